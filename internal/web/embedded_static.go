package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const embeddedPageTemplate = "templates/index.html"

// EmbeddedFS holds the default map page and its script, used when nothing is on disk
//
//go:embed templates/* static
var EmbeddedFS embed.FS

// ListEmbeddedFiles returns a list of all embedded files for debugging
func ListEmbeddedFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(EmbeddedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// StaticHandler returns a Gin handler for "/static/*filepath".
// A regular file below Config.StaticDir wins; otherwise the embedded copy is
// served. Directories are never listed.
func (s *WebServer) StaticHandler() gin.HandlerFunc {
	// Create a sub-filesystem for the static files
	staticFS, err := fs.Sub(EmbeddedFS, "static")
	if err != nil {
		panic("Failed to create embedded static filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(staticFS))

	return func(c *gin.Context) {
		// path.Clean on a rooted path drops any ".." that would climb out
		clean := path.Clean("/" + c.Param("filepath"))
		rel := strings.TrimPrefix(clean, "/")
		if rel == "" {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		if s.Config.StaticDir != "" {
			diskPath := filepath.Join(s.Config.StaticDir, filepath.FromSlash(rel))
			if fi, err := os.Stat(diskPath); err == nil && fi.Mode().IsRegular() {
				c.File(diskPath)
				return
			}
		}

		if fi, err := fs.Stat(staticFS, rel); err != nil || fi.IsDir() {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		// Set some cache headers for static content
		c.Header("Cache-Control", "public, max-age=3600") // browser caches an hour
		c.Request.URL.Path = clean
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
