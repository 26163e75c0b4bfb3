package metrics

// Momentum compares a short window against a longer one that contains it,
// e.g. the last 30 days against the last 90.
type Momentum struct {
	Accelerating bool    `json:"accelerating"`
	Contribution float64 `json:"contribution"` // percent of the longer window's pnl

	EfficiencyRising bool    `json:"efficiencyRising"`
	ProfitFactorDiff float64 `json:"profitFactorDiff"`

	Optimizing  bool    `json:"optimizing"`
	WinRateDiff float64 `json:"winRateDiff"`
}

// CompareMomentum reports whether the recent window is running ahead of the
// longer one. Pnl velocity is judged against a third of the longer window,
// the share a 30-day slice of 90 days would have at a constant pace.
func CompareMomentum(recent, longer Performance) Momentum {
	base := longer.TotalPnL
	if base == 0 {
		base = 1
	}
	return Momentum{
		Accelerating:     recent.TotalPnL > longer.TotalPnL/3,
		Contribution:     recent.TotalPnL / base * 100,
		EfficiencyRising: recent.ProfitFactor > longer.ProfitFactor,
		ProfitFactorDiff: recent.ProfitFactor - longer.ProfitFactor,
		Optimizing:       recent.WinRate > longer.WinRate,
		WinRateDiff:      recent.WinRate - longer.WinRate,
	}
}

func (m Momentum) Velocity() string {
	if m.Accelerating {
		return "Accelerating"
	}
	return "Decelerating"
}

func (m Momentum) Efficiency() string {
	if m.EfficiencyRising {
		return "Rising"
	}
	return "Falling"
}

func (m Momentum) Consistency() string {
	if m.Optimizing {
		return "Optimizing"
	}
	return "Deviating"
}
