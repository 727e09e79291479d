package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// WakeUpReply is the fixed body of the keep-alive route.
const WakeUpReply = "Hey!Wake Up!!"

// HealthStatus is the /healthz payload.
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	StartedAt string `json:"started_at"`
	Timestamp string `json:"timestamp"`
}

type healthHandler struct {
	service string
	version string
	start   time.Time
	now     func() time.Time
}

func (h *healthHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthStatus{
		Status:    "healthy",
		Service:   h.service,
		Version:   h.version,
		Uptime:    strings.TrimSpace(humanize.RelTime(h.start, now, "", "")),
		StartedAt: h.start.Format(time.RFC3339),
		Timestamp: now.Format(time.RFC3339),
	})
}

func handleWakeUp(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(WakeUpReply))
}
