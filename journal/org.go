package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a trade as an Org-mode block. Structured facts go in
// the PROPERTIES drawer; notes and the review headings follow.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", t.Date, t.Symbol, t.Status, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date)
	fmt.Fprintf(&b, ":SIZE: %s\n", f(t.Size))
	fmt.Fprintf(&b, ":ENTRY_PRICE: %s\n", f(t.EntryPrice))
	fmt.Fprintf(&b, ":EXIT_PRICE: %s\n", f(t.ExitPrice))
	fmt.Fprintf(&b, ":PNL: %.2f\n", t.PnL)
	fmt.Fprintf(&b, ":ROI: %.2f\n", t.ROI)
	fmt.Fprintf(&b, ":RR: %.2f\n", t.RRRatio)
	fmt.Fprintf(&b, ":STRATEGY: %s\n", t.Strategy)
	fmt.Fprintf(&b, ":EMOTION: %d\n", t.EmotionScale)
	b.WriteString(":END:\n\n")

	b.WriteString("*** Notes\n")
	if t.Notes != "" {
		fmt.Fprintf(&b, "%s\n", t.Notes)
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
