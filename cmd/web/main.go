// Web server for go-uscounties: map page plus state and county GeoJSON API
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-uscounties/internal/config"
	"github.com/go-while/go-uscounties/internal/web"
	"golang.org/x/term"
)

var (
	// command-line flags
	webport      int
	webhost      string
	webssl       bool
	webcertFile  string
	webkeyFile   string
	dataDir      string
	staticDir    string
	templateFile string
	pprofAddr    string
	debug        bool
)

var appVersion = "-unset-"

const shutdownTimeout = 10 * time.Second

func main() {
	config.AppVersion = appVersion

	flag.IntVar(&webport, "webport", 0, "Web server port (default: $PORT or 5000)")
	flag.StringVar(&webhost, "webhost", "", "Web server listen address (default: 0.0.0.0)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&dataDir, "datadir", "", "Directory holding us-states.json and counties/ (default: static/data)")
	flag.StringVar(&staticDir, "staticdir", "", "Directory served under /static (default: static)")
	flag.StringVar(&templateFile, "template", "", "Page template for / (default: templates/index.html, embedded page if missing)")
	flag.StringVar(&pprofAddr, "pprof", "", "Start pprof web endpoint on this address (e.g. :51111)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging and gin debug mode")
	flag.Parse()

	log.Printf("Starting go-uscounties web server (version: %s)", appVersion)

	webConfig := config.NewDefaultConfig()
	if err := webConfig.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("[WEB]: %v", err)
	}
	applyFlags(webConfig)
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}

	if webConfig.Debug {
		gin.SetMode(gin.DebugMode)
		if files, err := web.ListEmbeddedFiles(); err == nil {
			log.Printf("[WEB]: Embedded files: %v", files)
		}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		gin.DisableConsoleColor()
	}

	if webConfig.PprofAddr != "" {
		startProfiler(webConfig.PprofAddr)
	}

	server := web.NewServer(webConfig)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Printf("[WEB]: Starting go-uscounties web server on %s://%s (port %d)", webConfig.Protocol(), webConfig.Addr(), server.GetPort())

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Printf("[WEB]: Received %v, initiating graceful shutdown...", sig)
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error during shutdown: %v", err)
		return
	}
	log.Printf("[WEB]: Graceful shutdown completed")
} // end main
