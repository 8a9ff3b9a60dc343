package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"examforge/internal/common"
	"examforge/internal/exam"
)

type composeRequest struct {
	Mode  string `json:"mode"`
	Count int    `json:"count"`
}

func (s *Server) handleExamCompose(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, common.InvalidArgumentError("invalid request body"))
		return
	}

	mode, err := exam.ParseMode(req.Mode)
	if err != nil {
		s.handleError(c, err)
		return
	}
	count := req.Count
	if count <= 0 {
		count = s.defaultCount
	}

	questions, err := s.composer.Compose(c.Request.Context(), mode, count)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":      string(mode),
		"count":     len(questions),
		"questions": questions,
	})
}
