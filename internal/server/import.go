package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"examforge/internal/common"
	"examforge/internal/importer"
	"examforge/internal/parse"
)

// Question text in scan summaries is cut at this many runes.
const previewLimit = 200

// reportPayload flattens a parse report with its hash and, on the scan
// surface, truncated question previews.
type reportPayload struct {
	*parse.Report
	FileHash  string            `json:"file_hash"`
	Questions []questionPreview `json:"questions,omitempty"`
}

type questionPreview struct {
	StableID     string   `json:"stable_id"`
	Text         string   `json:"text"`
	ChoicesCount int      `json:"choices_count"`
	HasAnswer    bool     `json:"has_answer"`
	DomainID     string   `json:"domain_id"`
	SourcePage   int      `json:"source_page"`
	Issues       []string `json:"issues,omitempty"`
}

type scanResponse struct {
	SessionID     string                   `json:"session_id"`
	FilesFound    int                      `json:"files_found"`
	IsDemo        bool                     `json:"is_demo"`
	NeedsImport   bool                     `json:"needs_import"`
	Reports       []reportPayload          `json:"reports"`
	IssuesSummary importer.IssueSummary    `json:"issues_summary"`
	Hints         []importer.DuplicateHint `json:"duplicate_hints,omitempty"`
}

func (s *Server) handleScan(c *gin.Context) {
	session, err := s.importer.Scan(c.Request.Context(), s.pdfDir)
	if err != nil {
		s.handleError(c, err)
		return
	}
	s.RememberSession(session)

	resp := scanResponse{
		SessionID:     session.ID,
		FilesFound:    session.FilesFound,
		IsDemo:        session.Demo,
		NeedsImport:   session.NeedsImport(),
		Reports:       make([]reportPayload, 0, len(session.Reports)),
		IssuesSummary: session.Issues,
		Hints:         session.Hints,
	}
	for _, fr := range session.Reports {
		resp.Reports = append(resp.Reports, reportPayload{
			Report:    fr.Report,
			FileHash:  fr.FileHash,
			Questions: previews(fr.Report.Questions),
		})
	}
	c.JSON(http.StatusOK, resp)
}

type runRequest struct {
	SessionID string                  `json:"session_id"`
	Edits     []importer.QuestionEdit `json:"edits"`
}

func (s *Server) handleImportRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, common.InvalidArgumentError("invalid request body"))
		return
	}

	v := common.NewValidator()
	v.Field("session_id", req.SessionID, common.Required, common.UUID)
	for i, edit := range req.Edits {
		v.Field(fmt.Sprintf("edits[%d].stable_id", i), edit.StableID, common.Required)
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		s.handleError(c, err)
		return
	}

	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		s.handleError(c, common.InvalidArgumentError("unknown or expired scan session, re-scan first"))
		return
	}

	result, err := s.importer.Import(c.Request.Context(), session, req.Edits)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleImportStatus(c *gin.Context) {
	status, err := s.importer.Status(c.Request.Context(), s.pdfDir)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleImportReport(c *gin.Context) {
	session, ok := s.currentSession()
	if !ok {
		count, err := s.importer.QuestionCount(c.Request.Context())
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"has_scan": false, "questions_in_db": count})
		return
	}

	if session.Demo {
		c.JSON(http.StatusOK, gin.H{
			"has_scan":   true,
			"session_id": session.ID,
			"is_demo":    true,
			"questions":  session.Questions,
		})
		return
	}

	payloads := make([]reportPayload, 0, len(session.Reports))
	for _, fr := range session.Reports {
		payloads = append(payloads, reportPayload{Report: fr.Report, FileHash: fr.FileHash})
	}
	c.JSON(http.StatusOK, gin.H{
		"has_scan":        true,
		"session_id":      session.ID,
		"is_demo":         false,
		"reports":         payloads,
		"questions_count": len(session.Questions),
		"issues_summary":  session.Issues,
	})
}

func previews(questions []*parse.Question) []questionPreview {
	out := make([]questionPreview, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionPreview{
			StableID:     q.StableID(),
			Text:         previewText(q.Text),
			ChoicesCount: len(q.Choices),
			HasAnswer:    len(q.CorrectAnswers) > 0,
			DomainID:     q.DomainID,
			SourcePage:   q.SourcePage,
			Issues:       q.Issues,
		})
	}
	return out
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
