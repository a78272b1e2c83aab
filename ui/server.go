package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"sync"

	"gbsaview/app"
	"gbsaview/internal/config"
	"gbsaview/internal/session"
	"gbsaview/ui/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server represents the web server for the trajectory viewer UI
type Server struct {
	router        *gin.Engine
	service       *app.ViewerService
	sessions      *session.Store
	cfg           *config.Config
	templates     *template.Template
	embeddedFiles embed.FS

	// Last render result per session, kept for the download endpoints.
	resultCache map[uuid.UUID]*app.ViewResult
	cacheMutex  sync.RWMutex
}

// NewServer creates a new web server instance
func NewServer(embeddedFiles embed.FS) *Server {
	return &Server{
		router:        gin.Default(),
		embeddedFiles: embeddedFiles,
		resultCache:   make(map[uuid.UUID]*app.ViewResult),
	}
}

// Initialize sets up the server with dependencies
func (s *Server) Initialize(cfg *config.Config, service *app.ViewerService, sessions *session.Store) error {
	s.cfg = cfg
	s.service = service
	s.sessions = sessions

	// The embed root differs between the binary ("ui/templates/...") and
	// package-local embeds ("templates/...").
	var templatesFS fs.FS
	var files []string
	for _, root := range []string{"ui/templates", "templates"} {
		sub, err := fs.Sub(s.embeddedFiles, root)
		if err != nil {
			continue
		}
		if found, _ := fs.Glob(sub, "*.html"); len(found) > 0 {
			templatesFS, files = sub, found
			break
		}
	}
	if templatesFS == nil {
		return fmt.Errorf("no templates found in embedded filesystem")
	}
	log.Printf("[TemplateInit] Found %d template files: %v", len(files), files)

	s.templates = template.New("")
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.MaxMultipartMemory = s.cfg.Upload.MaxFileSizeMB << 20
	s.router.Use(middleware.EnsureSession())
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/plot", s.handlePlot)
	s.router.POST("/settings/reset", s.handleSettingsReset)

	s.router.GET("/download/png", s.handleDownloadPNG)
	s.router.GET("/download/txt", s.handleDownloadTXT)
	s.router.GET("/download/csv", s.handleDownloadCSV)
	s.router.GET("/download/xlsx", s.handleDownloadXLSX)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting trajectory viewer UI on http://%s", addr)
	return s.router.Run(addr)
}

// settingsFor returns the display settings bound to the request's session.
func (s *Server) settingsFor(c *gin.Context) (uuid.UUID, *session.Settings) {
	sid := middleware.SessionID(c)
	return sid, s.sessions.GetOrCreate(sid)
}

func (s *Server) cachedResult(sid uuid.UUID) *app.ViewResult {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	return s.resultCache[sid]
}

func (s *Server) cacheResult(sid uuid.UUID, result *app.ViewResult) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	if result == nil {
		delete(s.resultCache, sid)
		return
	}
	s.resultCache[sid] = result
}
