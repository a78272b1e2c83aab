package ui

import (
	"fmt"
	"log"
	"net/http"

	"gbsaview/app"
	"gbsaview/internal/export"
	"gbsaview/ui/middleware"

	"github.com/gin-gonic/gin"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// resultOr404 fetches the session's last render, replying 404 when the
// session has not plotted anything yet.
func (s *Server) resultOr404(c *gin.Context) *app.ViewResult {
	result := s.cachedResult(middleware.SessionID(c))
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing rendered yet; upload a file first"})
		return nil
	}
	return result
}

func serveAttachment(c *gin.Context, filename, contentType string, body []byte) {
	log.Printf("[download] Serving %s (%d bytes)", filename, len(body))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}

// handleDownloadPNG serves the last rendered chart image.
func (s *Server) handleDownloadPNG(c *gin.Context) {
	if result := s.resultOr404(c); result != nil {
		serveAttachment(c, result.PNGName, "image/png", result.PNG)
	}
}

// handleDownloadTXT serves the last statistics report.
func (s *Server) handleDownloadTXT(c *gin.Context) {
	if result := s.resultOr404(c); result != nil {
		serveAttachment(c, result.TXTName, "text/plain; charset=utf-8", []byte(result.Report))
	}
}

// handleDownloadCSV serves the comparison statistics table. Available only
// after a comparison-mode render.
func (s *Server) handleDownloadCSV(c *gin.Context) {
	result := s.resultOr404(c)
	if result == nil {
		return
	}
	if result.CSV == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "CSV export is only available in comparison mode"})
		return
	}
	serveAttachment(c, export.ComparisonCSVName, "text/csv", result.CSV)
}

// handleDownloadXLSX serves the comparison statistics workbook.
func (s *Server) handleDownloadXLSX(c *gin.Context) {
	result := s.resultOr404(c)
	if result == nil {
		return
	}
	if result.Workbook == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workbook export is only available in comparison mode"})
		return
	}
	serveAttachment(c, export.ComparisonXLSXName, xlsxMime, result.Workbook)
}
