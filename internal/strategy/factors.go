package strategy

import "fmt"

// overboughtK is the K level above which a golden cross carries a pull-back caveat.
const overboughtK = 80

// maSignal describes the short vs long moving-average relationship.
func maSignal(maShort, maLong float64) string {
	if maShort > maLong {
		return "短期均線突破長期均線，趨勢轉強"
	}
	return "短期均線在長期均線下方，趨勢偏弱"
}

// kdSignal describes the K/D crossing state, carrying both values to one decimal.
func kdSignal(k, d float64) string {
	switch {
	case k > d:
		s := fmt.Sprintf("黃金交叉，偏多 (K=%.1f, D=%.1f)", k, d)
		if k > overboughtK {
			s += "（K值超買，短期可能回檔）"
		}
		return s
	case k < d:
		return fmt.Sprintf("死亡交叉，偏空 (K=%.1f, D=%.1f)", k, d)
	default:
		return fmt.Sprintf("持平 (K=%.1f, D=%.1f)", k, d)
	}
}

// buySignal: price at/near resistance, or bullish MA alignment confirmed by K over D.
func buySignal(in Inputs) bool {
	return in.Close >= in.Levels.Resistance*0.995 || (in.MAShort > in.MALong && in.K > in.D)
}

// sellSignal: price at/near support, or bearish MA alignment confirmed by K under D.
func sellSignal(in Inputs) bool {
	return in.Close <= in.Levels.Support*1.005 || (in.MAShort < in.MALong && in.K < in.D)
}
