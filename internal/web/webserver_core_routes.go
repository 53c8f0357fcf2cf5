// Package web provides the HTTP server and map page for go-uscounties
package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-uscounties/internal/config"
	"github.com/go-while/go-uscounties/internal/geodata"
)

// TrustedProxies are the peers whose X-Forwarded-* headers are honoured
// (common reverse proxy setups: nginx on localhost or a private network)
var TrustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// WebServer represents the web server
type WebServer struct {
	Router *gin.Engine
	Config *config.WebConfig
	Store  *geodata.Store

	httpServer  *http.Server
	trustedNets []*net.IPNet
}

// TemplateData represents the data handed to the page template
type TemplateData struct {
	Title      template.HTML
	AppVersion string
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig) *WebServer {
	router := gin.New()
	// unknown paths are 404s, no redirect to a slash variant
	router.RedirectTrailingSlash = false

	// ClientIP() only believes forwarding headers from these peers
	if err := router.SetTrustedProxies(TrustedProxies); err != nil {
		log.Printf("[WEB]: Warning: failed to set trusted proxies: %v", err)
	}

	server := &WebServer{
		Router:      router,
		Config:      webconfig,
		Store:       geodata.NewStore(webconfig.DataDir),
		trustedNets: parseTrustedProxies(TrustedProxies),
	}
	server.httpServer = &http.Server{
		Addr:              webconfig.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Use(server.ApacheLogFormat(), gin.Recovery())

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	router.Use(secure.New(secureConfig))

	// Add reverse proxy middleware for handling X-Forwarded headers
	router.Use(server.ReverseProxyMiddleware())

	server.setupRoutes()
	return server
}

// getAndHead registers h for GET and HEAD
func getAndHead(r gin.IRoutes, path string, h gin.HandlerFunc) {
	r.GET(path, h)
	r.HEAD(path, h)
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	// Static files first (highest priority): disk StaticDir, then embedded copy
	getAndHead(s.Router, "/static/*filepath", s.StaticHandler())

	getAndHead(s.Router, "/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	api := s.Router.Group("/api")
	{
		getAndHead(api, "/states", s.getStates)
		getAndHead(api, "/counties/:state_code", s.getCounties)
	}

	getAndHead(s.Router, "/", s.homePage)
}

// Start starts the web server with SSL support if configured.
// It blocks until the server stops and returns http.ErrServerClosed after Shutdown.
func (s *WebServer) Start() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	if s.Config.SSL {
		log.Printf("[WEB]: Starting HTTPS server on %s", s.httpServer.Addr)
		return s.httpServer.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Serve accepts plain HTTP connections on ln until Shutdown
func (s *WebServer) Serve(ln net.Listener) error {
	log.Printf("[WEB]: Serving HTTP on %s", ln.Addr())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server. Calling it before Start makes a
// later Start return http.ErrServerClosed right away.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// parseTrustedProxies turns IPs and CIDRs into networks; bad entries are logged and skipped
func parseTrustedProxies(proxies []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, p := range proxies {
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				log.Printf("[WEB]: Warning: invalid trusted proxy %q", p)
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			log.Printf("[WEB]: Warning: invalid trusted proxy %q: %v", p, err)
			continue
		}
		nets = append(nets, n)
	}
	return nets
}

// isTrustedPeer reports whether the direct peer of the request is a trusted proxy
func (s *WebServer) isTrustedPeer(c *gin.Context) bool {
	ip := net.ParseIP(c.RemoteIP())
	if ip == nil {
		return false
	}
	for _, n := range s.trustedNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ReverseProxyMiddleware applies X-Forwarded-Proto and X-Forwarded-Host from trusted proxies.
// The client address is left to gin's ClientIP(), which uses the same trusted list.
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.isTrustedPeer(c) {
			c.Next()
			return
		}

		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}

		c.Next()
	}
}

// ApacheLogFormat logs requests in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
