// Package server exposes the import, export and exam surfaces over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"examforge/internal/common"
	"examforge/internal/exam"
	"examforge/internal/export"
	"examforge/internal/importer"
)

// The registry keeps this many scan sessions; older ones are evicted and
// their ids answer 400 until a re-scan.
const maxSessions = 32

const requestIDHeader = "X-Request-ID"

// Server holds the REST API state.
type Server struct {
	importer     *importer.Importer
	exporter     *export.Service
	composer     *exam.Composer
	pdfDir       string
	defaultCount int
	logger       *slog.Logger
	router       *gin.Engine

	sessions *lru.Cache[string, *importer.ScanSession]

	mu        sync.Mutex
	currentID string
}

func NewServer(cfg *common.Config, imp *importer.Importer, exp *export.Service, comp *exam.Composer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	sessions, _ := lru.New[string, *importer.ScanSession](maxSessions)
	s := &Server{
		importer:     imp,
		exporter:     exp,
		composer:     comp,
		pdfDir:       cfg.Paths.PDFsDir,
		defaultCount: cfg.Exam.QuestionCount,
		logger:       logger,
		router:       gin.Default(),
		sessions:     sessions,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler returns the underlying HTTP handler, for embedding in an
// http.Server with timeouts and graceful shutdown.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(requestContext())

	s.router.GET("/healthz", s.healthCheck)

	api := s.router.Group("/api")
	api.POST("/import/scan", s.handleScan)
	api.POST("/import/run", s.handleImportRun)
	api.GET("/import/status", s.handleImportStatus)
	api.GET("/import/report", s.handleImportReport)
	api.GET("/export/xlsx", s.handleExportXLSX)
	api.POST("/exam/compose", s.handleExamCompose)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// RememberSession registers a scan session and makes it the current one
// for the report and export endpoints. Background scans use this too.
func (s *Server) RememberSession(session *importer.ScanSession) {
	s.sessions.Add(session.ID, session)
	s.mu.Lock()
	s.currentID = session.ID
	s.mu.Unlock()
}

func (s *Server) currentSession() (*importer.ScanSession, bool) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

// requestContext tags each request with an id for log correlation,
// honoring one supplied by a proxy.
func requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) handleError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", c.FullPath(),
			"request_id", common.RequestIDFromContext(c.Request.Context()),
			"error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
