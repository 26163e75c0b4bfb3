package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradezilla/journal"
)

func (s *Server) listTrades(c *gin.Context) {
	trades := journal.SortByDate(s.Journal.Trades(), true)
	Ok(c, trades, map[string]any{"total": len(trades)})
}

func (s *Server) getTrade(c *gin.Context) {
	t, err := s.Journal.Find(c.Param("id"))
	if err != nil {
		s.tradeError(c, err)
		return
	}
	Ok(c, t, nil)
}

func (s *Server) createTrade(c *gin.Context) {
	s.saveTrade(c, "")
}

func (s *Server) updateTrade(c *gin.Context) {
	s.saveTrade(c, c.Param("id"))
}

func (s *Server) saveTrade(c *gin.Context, tradeID string) {
	var e journal.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		Error(c, http.StatusBadRequest, "invalid json: "+err.Error(), nil)
		return
	}
	rec, err := s.Journal.Save(c.Request.Context(), e, tradeID)
	if err != nil {
		s.tradeError(c, err)
		return
	}
	Ok(c, rec, nil)
}

func (s *Server) deleteTrade(c *gin.Context) {
	if err := s.Journal.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.tradeError(c, err)
		return
	}
	Ok(c, gin.H{"id": c.Param("id")}, nil)
}

func (s *Server) tradeError(c *gin.Context, err error) {
	var fe journal.FieldErrors
	switch {
	case errors.As(err, &fe):
		Error(c, http.StatusBadRequest, "validation failed", map[string]any{"fields": fe})
	case errors.Is(err, journal.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	default:
		s.Logger.Error("trade request failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		Error(c, http.StatusInternalServerError, "storage error", nil)
	}
}
