package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/tradezilla/internal/report"
	"github.com/rustyeddy/tradezilla/internal/store"
	"github.com/rustyeddy/tradezilla/metrics"
	"github.com/rustyeddy/tradezilla/notify"
)

// getMetrics reports all-time figures, or the trailing ?days=N window.
func (s *Server) getMetrics(c *gin.Context) {
	if c.Query("days") == "" {
		p := s.Journal.Performance()
		Ok(c, p, map[string]any{"avgTrade": p.AvgTrade()})
		return
	}
	days, ok := intQuery(c, "days", 0)
	if !ok || days <= 0 {
		Error(c, http.StatusBadRequest, "days must be a positive integer", nil)
		return
	}
	p := s.Journal.Period(days, s.now())
	Ok(c, p, map[string]any{"days": days, "avgTrade": p.AvgTrade()})
}

func (s *Server) getEquity(c *gin.Context) {
	last, ok := intQuery(c, "last", 0)
	if !ok || last < 0 {
		Error(c, http.StatusBadRequest, "last must be a non-negative integer", nil)
		return
	}
	Ok(c, metrics.Tail(metrics.EquityCurve(s.Journal.Trades()), last), nil)
}

func (s *Server) getDaily(c *gin.Context) {
	days, ok := intQuery(c, "days", 14)
	if !ok || days <= 0 || days > 366 {
		Error(c, http.StatusBadRequest, "days must be between 1 and 366", nil)
		return
	}
	Ok(c, metrics.DailyPnL(s.Journal.Trades(), days, s.now()), nil)
}

func (s *Server) getCalendar(c *gin.Context) {
	now := s.now()
	year, month := now.Year(), now.Month()
	if v := strings.TrimSpace(c.Query("month")); v != "" {
		var err error
		if year, month, err = metrics.ParseMonth(v); err != nil {
			Error(c, http.StatusBadRequest, "month must be YYYY-MM", nil)
			return
		}
	}
	Ok(c, metrics.Calendar(s.Journal.Trades(), year, month), nil)
}

func (s *Server) getReport(c *gin.Context) {
	Ok(c, report.Compare(s.Journal.Chronological(), s.now()), nil)
}

func (s *Server) getNotifications(c *gin.Context) {
	notices := notify.Derive(s.now(), s.Journal.Trades(), s.Notify)
	Ok(c, notices, map[string]any{"total": len(notices)})
}

type profileBody struct {
	Name string `json:"name"`
}

func (s *Server) getProfile(c *gin.Context) {
	name, err := s.Journal.UserName(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, "storage error", nil)
		return
	}
	Ok(c, profileBody{Name: name}, nil)
}

func (s *Server) putProfile(c *gin.Context) {
	var body profileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid json: "+err.Error(), nil)
		return
	}
	name, err := s.Journal.SetUserName(c.Request.Context(), body.Name)
	if errors.Is(err, store.ErrEmptyName) {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, "storage error", nil)
		return
	}
	Ok(c, profileBody{Name: name}, nil)
}
