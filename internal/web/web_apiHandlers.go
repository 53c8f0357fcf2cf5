// Package web provides the HTTP server and map page for go-uscounties
package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-uscounties/internal/geodata"
)

// getStates serves "/api/states".
// The states file is not checked for existence first: any read or parse
// failure is a 500 with an empty body.
func (s *WebServer) getStates(c *gin.Context) {
	data, err := s.Store.States()
	if err != nil {
		s.abortInternal(c, "getStates", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// getCounties serves "/api/counties/:state_code"
func (s *WebServer) getCounties(c *gin.Context) {
	stateCode := c.Param("state_code")

	data, err := s.Store.Counties(stateCode)
	switch {
	case errors.Is(err, geodata.ErrNotFound):
		if s.Config.Debug {
			log.Printf("[WEB]: getCounties: %v", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case err != nil:
		s.abortInternal(c, "getCounties", err)
	default:
		c.JSON(http.StatusOK, data)
	}
}
