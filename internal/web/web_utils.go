// Package web provides the HTTP server and map page for go-uscounties
package web

import (
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// GetPort returns the listening port from the config
func (s *WebServer) GetPort() int {
	return s.Config.ListenPort
}

// loadPageTemplate parses the page template on every call.
// Falls back to the embedded page when TemplateFile does not exist.
func (s *WebServer) loadPageTemplate() (*template.Template, error) {
	if path := s.Config.TemplateFile; path != "" {
		if _, err := os.Stat(path); err == nil {
			return template.ParseFiles(path)
		}
	}
	return template.ParseFS(EmbeddedFS, embeddedPageTemplate)
}

// abortInternal logs err and answers with a bare 500
func (s *WebServer) abortInternal(c *gin.Context, where string, err error) {
	log.Printf("[WEB]: %s: %v", where, err)
	_ = c.AbortWithError(http.StatusInternalServerError, err)
}
