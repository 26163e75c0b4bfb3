package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/tradezilla/internal/coach"
)

type coachReply struct {
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
}

type chatBody struct {
	Question string `json:"question"`
}

func (s *Server) coachReview(c *gin.Context) {
	if s.Coach == nil {
		Error(c, http.StatusServiceUnavailable, "coach not configured", nil)
		return
	}
	r := s.Coach.WeeklyReview(c.Request.Context(), s.Journal.Trades(), s.now())
	Ok(c, coachReply{Text: r.Text, Failed: r.Err != nil}, nil)
}

func (s *Server) coachChat(c *gin.Context) {
	if s.Coach == nil {
		Error(c, http.StatusServiceUnavailable, "coach not configured", nil)
		return
	}
	var body chatBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid json: "+err.Error(), nil)
		return
	}
	r := s.Coach.Ask(c.Request.Context(), s.Journal.Chronological(), body.Question)
	if errors.Is(r.Err, coach.ErrEmptyQuestion) {
		Error(c, http.StatusBadRequest, r.Err.Error(), nil)
		return
	}
	Ok(c, coachReply{Text: r.Text, Failed: r.Err != nil}, nil)
}
