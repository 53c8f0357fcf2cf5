package main

import (
	"log"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-uscounties/internal/config"
)

// Prof is set when -pprof is given
var Prof *prof.Profiler

// applyFlags overrides config values with command-line flags that were provided.
// Flags win over $PORT.
func applyFlags(webConfig *config.WebConfig) {
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	}
	if webhost != "" {
		webConfig.ListenHost = webhost
	}
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
		log.Printf("[WEB]: SSL cert file set: %s", webConfig.CertFile)
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
		log.Printf("[WEB]: SSL key file set: %s", webConfig.KeyFile)
	}
	if dataDir != "" {
		webConfig.DataDir = dataDir
	}
	if staticDir != "" {
		webConfig.StaticDir = staticDir
	}
	if templateFile != "" {
		webConfig.TemplateFile = templateFile
	}
	if pprofAddr != "" {
		webConfig.PprofAddr = pprofAddr
	}
	if debug {
		webConfig.Debug = true
	}
}

// startProfiler serves pprof on addr and takes periodic memory profiles
func startProfiler(addr string) {
	Prof = prof.NewProf()
	go Prof.PprofWeb(addr)
	Prof.StartMemProfile(5*time.Minute, 30*time.Second)
	log.Printf("[WEB]: pprof web endpoint on %s", addr)
}
