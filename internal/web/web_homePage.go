// Package web provides the HTTP server and map page for go-uscounties
package web

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-uscounties/internal/config"
)

// homePage renders the map page for "/"
func (s *WebServer) homePage(c *gin.Context) {
	tmpl, err := s.loadPageTemplate()
	if err != nil {
		s.abortInternal(c, "homePage", err)
		return
	}

	data := TemplateData{
		Title:      "US States & Counties",
		AppVersion: config.AppVersion,
	}

	// Render into a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.abortInternal(c, "homePage", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
