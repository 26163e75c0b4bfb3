package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradezilla/metrics"
)

// PeriodOrg is the data behind an org-mode period summary.
type PeriodOrg struct {
	Title       string
	Created     time.Time
	Performance metrics.Performance
	Momentum    *metrics.Momentum
}

var periodOrgFuncs = template.FuncMap{
	"money": func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var periodOrg = template.Must(template.New("period").Funcs(periodOrgFuncs).Parse(PeriodOrgTemplate))

// WritePeriodOrg renders v as an org heading with a PROPERTIES drawer.
func WritePeriodOrg(w io.Writer, v PeriodOrg) error {
	if err := periodOrg.Execute(w, v); err != nil {
		return fmt.Errorf("render period org: %w", err)
	}
	return nil
}

const PeriodOrgTemplate = `* PERFORMANCE: {{.Title}}
:PROPERTIES:
:NET_PL:      {{money .Performance.TotalPnL}}
:WIN_RATE:    {{printf "%.2f" .Performance.WinRate}}
:PROFIT_FAC:  {{printf "%.2f" .Performance.ProfitFactor}}
:AVG_RR:      {{printf "%.2f" .Performance.AvgRR}}
:STREAK:      {{.Performance.CurrentWinStreak}}
:MAX_DD_PCT:  {{printf "%.2f" .Performance.MaxDrawdown}}
:TRADES:      {{.Performance.TotalTrades}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Performance.TotalPnL}}*
- Avg Trade:        *{{money .Performance.AvgTrade}}*
- Win Rate:         *{{printf "%.2f" .Performance.WinRate}}%*
- Profit Factor:    *{{printf "%.2f" .Performance.ProfitFactor}}*
- Max Drawdown:     *{{printf "%.2f" .Performance.MaxDrawdown}}%*
{{- with .Momentum }}

** Momentum
| Measure     | Verdict | Delta |
|-------------+---------+-------|
| Velocity    | {{.Velocity}} | {{printf "%.0f" .Contribution}}% |
| Efficiency  | {{.Efficiency}} | {{printf "%+.2f" .ProfitFactorDiff}} |
| Consistency | {{.Consistency}} | {{printf "%+.1f" .WinRateDiff}} |
{{- end }}

** Review
- 
`
