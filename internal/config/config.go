// Package config provides configuration management for go-hellopage.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var AppVersion = "-unset-" // will be set at build time

const (
	DefaultHost            = "127.0.0.1"
	DefaultListenPort      = 5000
	DefaultMetricsPath     = "/metrics"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
)

var (
	ErrInvalidPort = errors.New("invalid listen port")
	ErrSSLFiles    = errors.New("SSL enabled but cert_file or key_file not specified")
)

// MainConfig holds the main configuration for go-hellopage
type MainConfig struct {
	// Web interface settings
	Web WebConfig `mapstructure:"web" json:"web"`

	Tracing   bool   `mapstructure:"tracing" json:"tracing"`       // Export request spans to stdout
	PprofAddr string `mapstructure:"pprof_addr" json:"pprof_addr"` // Only used in debug mode

	AppVersion string `mapstructure:"-" json:"app_version"` // Application version, set at build time
}

// WebConfig holds web interface configuration
type WebConfig struct {
	Host            string        `mapstructure:"host" json:"host"`
	ListenPort      int           `mapstructure:"listen_port" json:"listen_port"`
	SSL             bool          `mapstructure:"ssl" json:"ssl"`
	CertFile        string        `mapstructure:"cert_file" json:"cert_file,omitempty"`
	KeyFile         string        `mapstructure:"key_file" json:"key_file,omitempty"`
	Debug           bool          `mapstructure:"debug" json:"debug"` // gin debug mode, verbose recovery, dev logger
	TrustedProxies  []string      `mapstructure:"trusted_proxies" json:"trusted_proxies"`
	MetricsPath     string        `mapstructure:"metrics_path" json:"metrics_path"` // empty disables /metrics
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" json:"idle_timeout"`
	CORS            CORSConfig    `mapstructure:"cors" json:"cors"`
}

// CORSConfig holds cross-origin settings. CORS is off while AllowOrigins is empty.
type CORSConfig struct {
	AllowOrigins []string      `mapstructure:"allow_origins" json:"allow_origins"`
	MaxAge       time.Duration `mapstructure:"max_age" json:"max_age"`
}

// DefaultTrustedProxies covers loopback and the private ranges used by common reverse proxy setups.
var DefaultTrustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	return &MainConfig{
		AppVersion: AppVersion,
		Web: WebConfig{
			Host:            DefaultHost,
			ListenPort:      DefaultListenPort,
			TrustedProxies:  append([]string(nil), DefaultTrustedProxies...),
			MetricsPath:     DefaultMetricsPath,
			ShutdownTimeout: DefaultShutdownTimeout,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			CORS: CORSConfig{
				MaxAge: 12 * time.Hour,
			},
		},
	}
}

// Addr returns host:port for the listener
func (c *WebConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.ListenPort))
}

// Protocol returns "https" when SSL is on, "http" otherwise
func (c *WebConfig) Protocol() string {
	if c.SSL {
		return "https"
	}
	return "http"
}

// Validate checks the listener settings before the server is built.
func (c *WebConfig) Validate() error {
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("%w: %d (must be between 1 and 65535)", ErrInvalidPort, c.ListenPort)
	}
	if c.SSL && (c.CertFile == "" || c.KeyFile == "") {
		return ErrSSLFiles
	}
	return nil
}
