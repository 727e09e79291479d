package notifier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

func TestFormatReport(t *testing.T) {
	r := &model.Report{
		Symbol: "2330.TW",
		Close:  125,
		Levels: model.Levels{Support: 121.5, Resistance: 125},
		Decision: model.Decision{
			Advice:         model.AdviceBuy,
			ExpectedReturn: 2,
			MASignal:       "短期均線突破長期均線，趨勢轉強",
			KDSignal:       "黃金交叉，偏多 (K=90.1, D=85.0)",
		},
		Granularity: model.Daily,
		Rows:        25,
	}

	want := "📊 2330.TW\n" +
		"收盤價: 125.00\n" +
		"支撐: 121.50, 壓力: 125.00\n" +
		"預期報酬率: 2.00%\n" +
		"MA 判斷: 短期均線突破長期均線，趨勢轉強\n" +
		"KD 判斷: 黃金交叉，偏多 (K=90.1, D=85.0)\n" +
		"建議: BUY ✅\n" +
		"資料來源: 日線（近 14 日），有效筆數 25\n"
	assert.Equal(t, want, FormatReport(r))
}

func TestFormatReport_HoldWithNote(t *testing.T) {
	r := &model.Report{
		Symbol:      "0050.TW",
		Close:       100,
		Decision:    model.Decision{Advice: model.AdviceHold, Note: "多空訊號同時出現，建議觀望"},
		Granularity: model.Intraday,
	}
	out := FormatReport(r)
	assert.Contains(t, out, "建議: HOLD ⏸")
	assert.Contains(t, out, "備註: 多空訊號同時出現，建議觀望")
	assert.Contains(t, out, "盤中 15 分鐘線（近 1 日）")
}

func TestFormatFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		open bool
		want string
	}{
		{
			name: "download",
			err:  &collector.DownloadError{Granularity: "daily", Attempts: 3, Err: errors.New("timeout")},
			want: "2330.TW 資料下載失敗: timeout",
		},
		{
			name: "no data",
			err:  collector.ErrNoData,
			want: "2330.TW 無法取得資料，請稍後再試",
		},
		{
			name: "insufficient while closed",
			err:  &calculator.InsufficientDataError{Rows: 2},
			want: "2330.TW 資料不足，無法分析（有效列數 2）\n目前非交易時段，資料源可能尚未更新",
		},
		{
			name: "insufficient while open",
			err:  fmt.Errorf("clean: %w", &calculator.InsufficientDataError{Rows: 1}),
			open: true,
			want: "2330.TW 資料不足，無法分析（有效列數 1）\n盤中資料尚未累積足夠筆數，請稍後再試",
		},
		{
			name: "no bullish bars",
			err:  calculator.ErrNoBullishBars,
			want: "2330.TW 找不到足夠的陽線資料，無法計算支撐/壓力",
		},
		{
			name: "malformed",
			err:  fmt.Errorf("%w: close=NaN", strategy.ErrMalformedInput),
			want: "2330.TW 資料解析失敗: malformed indicator input: close=NaN",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "2330.TW 分析失敗: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFailure("2330.TW", tt.err, tt.open))
		})
	}
}
