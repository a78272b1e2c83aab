package ui

import (
	"bytes"
	"log"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes the index template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, data *viewData) {
	// Render to a buffer first to catch errors before writing to the response
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Printf("Template error for index.html: %v", err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}
