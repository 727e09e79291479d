package notifier

import (
	"errors"
	"fmt"
	"strings"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/strategy"
)

// FormatReport renders one symbol's analysis into the chat reply template.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 %s\n", r.Symbol))
	b.WriteString(fmt.Sprintf("收盤價: %.2f\n", r.Close))
	b.WriteString(fmt.Sprintf("支撐: %.2f, 壓力: %.2f\n", r.Levels.Support, r.Levels.Resistance))
	b.WriteString(fmt.Sprintf("預期報酬率: %.2f%%\n", r.Decision.ExpectedReturn))
	b.WriteString(fmt.Sprintf("MA 判斷: %s\n", r.Decision.MASignal))
	b.WriteString(fmt.Sprintf("KD 判斷: %s\n", r.Decision.KDSignal))
	b.WriteString(fmt.Sprintf("建議: %s %s\n", r.Decision.Advice, r.Decision.Advice.Glyph()))
	if r.Decision.Note != "" {
		b.WriteString(fmt.Sprintf("備註: %s\n", r.Decision.Note))
	}
	b.WriteString(fmt.Sprintf("資料來源: %s，有效筆數 %d\n", r.Granularity.Label, r.Rows))

	return b.String()
}

// FormatFailure renders a per-symbol failure. sessionOpen selects the insufficient-data hint.
func FormatFailure(symbol string, err error, sessionOpen bool) string {
	var insufficient *calculator.InsufficientDataError
	var download *collector.DownloadError

	switch {
	case errors.As(err, &insufficient):
		hint := "目前非交易時段，資料源可能尚未更新"
		if sessionOpen {
			hint = "盤中資料尚未累積足夠筆數，請稍後再試"
		}
		return fmt.Sprintf("%s 資料不足，無法分析（有效列數 %d）\n%s", symbol, insufficient.Rows, hint)
	case errors.Is(err, calculator.ErrNoBullishBars):
		return fmt.Sprintf("%s 找不到足夠的陽線資料，無法計算支撐/壓力", symbol)
	case errors.As(err, &download):
		return fmt.Sprintf("%s 資料下載失敗: %v", symbol, download.Err)
	case errors.Is(err, collector.ErrNoData):
		return fmt.Sprintf("%s 無法取得資料，請稍後再試", symbol)
	case errors.Is(err, strategy.ErrMalformedInput):
		return fmt.Sprintf("%s 資料解析失敗: %v", symbol, err)
	default:
		return fmt.Sprintf("%s 分析失敗: %v", symbol, err)
	}
}
