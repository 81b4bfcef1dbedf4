package main

import (
	"flag"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-hellopage/internal/config"
	"go.uber.org/zap"
)

var Prof *prof.Profiler

// setFlags returns the names of the flags given on the command line
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags overrides config values with the command-line flags that were actually given
func applyFlags(cfg *config.MainConfig, set map[string]bool) {
	if set["webhost"] {
		cfg.Web.Host = webhost
	}
	if set["webport"] {
		cfg.Web.ListenPort = webport
	}
	if set["debug"] {
		cfg.Web.Debug = webdebug
	}
	if set["webssl"] {
		cfg.Web.SSL = webssl
	}
	if set["websslcert"] {
		cfg.Web.CertFile = webcertFile
	}
	if set["websslkey"] {
		cfg.Web.KeyFile = webkeyFile
	}
	if set["pprof"] {
		cfg.PprofAddr = pprofAddr
	}
	if set["trace"] {
		cfg.Tracing = withTrace
	}
}

// startProfiler serves pprof on addr in the background
func startProfiler(addr string, logger *zap.Logger) {
	Prof = prof.NewProf()
	logger.Info("Starting pprof web", zap.String("addr", addr))
	go Prof.PprofWeb(addr)
}
