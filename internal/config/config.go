// Package config provides configuration management for go-uscounties.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
)

var AppVersion = "-unset-" // will be set at build time

const (
	DefaultListenHost   = "0.0.0.0"
	DefaultListenPort   = 5000
	DefaultStaticDir    = "static"
	DefaultDataDir      = "static/data"
	DefaultTemplateFile = "templates/index.html"

	// PortEnv selects the listening port when no -webport flag is given
	PortEnv = "PORT"
)

var (
	ErrInvalidPort = errors.New("invalid port")
	ErrSSLNoCert   = errors.New("SSL enabled but cert_file or key_file not specified in config")
)

// WebConfig holds web server configuration.
// It is built once in main and handed to web.NewServer.
type WebConfig struct {
	ListenHost   string `json:"listen_host"`
	ListenPort   int    `json:"listen_port"`
	SSL          bool   `json:"ssl"`
	CertFile     string `json:"cert_file,omitempty"`
	KeyFile      string `json:"key_file,omitempty"`
	StaticDir    string `json:"static_dir"`
	DataDir      string `json:"data_dir"`
	TemplateFile string `json:"template_file"`
	PprofAddr    string `json:"pprof_addr,omitempty"`
	Debug        bool   `json:"debug"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *WebConfig {
	return &WebConfig{
		ListenHost:   DefaultListenHost,
		ListenPort:   DefaultListenPort,
		StaticDir:    DefaultStaticDir,
		DataDir:      DefaultDataDir,
		TemplateFile: DefaultTemplateFile,
	}
}

// ApplyEnv overrides the listen port from $PORT.
// getenv is os.Getenv in production and a map lookup in tests.
func (cfg *WebConfig) ApplyEnv(getenv func(string) string) error {
	portEnv := strings.TrimSpace(getenv(PortEnv))
	if portEnv == "" {
		return nil
	}
	p, err := strconv.Atoi(portEnv)
	if err != nil {
		return fmt.Errorf("%w in %s: %q", ErrInvalidPort, PortEnv, portEnv)
	}
	cfg.ListenPort = p
	log.Printf("[CONFIG]: Port set by environment variable %s: %d", PortEnv, p)
	return nil
}

// Validate checks the port range and the SSL file pair
func (cfg *WebConfig) Validate() error {
	if cfg.ListenPort < 1 || cfg.ListenPort > 65535 {
		return fmt.Errorf("%w: %d (must be between 1 and 65535)", ErrInvalidPort, cfg.ListenPort)
	}
	if cfg.SSL && (cfg.CertFile == "" || cfg.KeyFile == "") {
		return ErrSSLNoCert
	}
	return nil
}

// Addr returns host:port for http.Server
func (cfg *WebConfig) Addr() string {
	return net.JoinHostPort(cfg.ListenHost, strconv.Itoa(cfg.ListenPort))
}

// Protocol returns "https" when SSL is enabled, "http" otherwise
func (cfg *WebConfig) Protocol() string {
	if cfg.SSL {
		return "https"
	}
	return "http"
}
