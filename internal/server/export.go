package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"examforge/internal/common"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleExportXLSX(c *gin.Context) {
	session, ok := s.currentSession()
	if !ok {
		s.handleError(c, common.InvalidArgumentError("no scan to export, run a scan first"))
		return
	}

	b, err := s.exporter.SessionWorkbook(session)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="scan_review.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, b)
}
