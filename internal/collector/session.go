package collector

import (
	"fmt"
	"time"
	_ "time/tzdata" // exchange timezone must resolve on hosts without zoneinfo
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Session decides whether the exchange's regular trading window is active.
type Session struct {
	Location *time.Location
	OpenAt   time.Duration // offset from local midnight
	CloseAt  time.Duration
	Now      Clock
}

// NewSession builds a Session for timezone tz with "HH:MM" open/close bounds.
// A nil clock defaults to time.Now.
func NewSession(tz, open, close string, now Clock) (*Session, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	openAt, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closeAt, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}
	if closeAt <= openAt {
		return nil, fmt.Errorf("close time %s must be after open time %s", close, open)
	}
	if now == nil {
		now = time.Now
	}
	return &Session{Location: loc, OpenAt: openAt, CloseAt: closeAt, Now: now}, nil
}

// IsOpen reports whether the session is open right now.
func (s *Session) IsOpen() bool {
	return s.IsOpenAt(s.Now())
}

// IsOpenAt reports whether the session is open at t: a weekday with the local clock
// inside [OpenAt, CloseAt], bounds inclusive.
func (s *Session) IsOpenAt(t time.Time) bool {
	local := t.In(s.Location)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)
	sinceMidnight := local.Sub(midnight)
	return sinceMidnight >= s.OpenAt && sinceMidnight <= s.CloseAt
}

func parseClock(hhmm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
