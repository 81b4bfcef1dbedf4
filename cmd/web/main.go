// Web server for go-hellopage
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

	"github.com/go-while/go-hellopage/internal/config"
	"github.com/go-while/go-hellopage/internal/logging"
	"github.com/go-while/go-hellopage/internal/tracing"
	"github.com/go-while/go-hellopage/internal/web"
	"go.uber.org/zap"
)

var (
	// command-line flags
	configPath  string
	webhost     string
	webport     int
	webdebug    bool
	webssl      bool
	webcertFile string
	webkeyFile  string
	pprofAddr   string
	withTrace   bool
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configPath, "config", "", "Optional config file (yaml, json or toml)")
	flag.StringVar(&webhost, "webhost", "", "Web server listen address (default: 127.0.0.1)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 5000)")
	flag.BoolVar(&webdebug, "debug", false, "Debug mode: gin debug output, development logger, stack traces on panics")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&pprofAddr, "pprof", "", "Serve pprof on this address, only with -debug (e.g. 127.0.0.1:51111)")
	flag.BoolVar(&withTrace, "trace", false, "Write request spans to stdout")
	flag.Parse()

	mainConfig, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[WEB]: Error loading config: %v", err)
	}
	applyFlags(mainConfig, setFlags(flag.CommandLine))

	webConfig := &mainConfig.Web
	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid web config: %v", err)
	}

	logger, err := logging.New(webConfig.Debug)
	if err != nil {
		log.Fatalf("[WEB]: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting go-hellopage web server",
		zap.String("version", mainConfig.AppVersion),
		zap.String("url", webConfig.Protocol()+"://"+webConfig.Addr()),
		zap.Bool("debug", webConfig.Debug),
		zap.Bool("tracing", mainConfig.Tracing),
	)

	shutdownTracing, err := tracing.Setup(mainConfig.Tracing, os.Stdout, mainConfig.AppVersion)
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	if webConfig.Debug && mainConfig.PprofAddr != "" {
		startProfiler(mainConfig.PprofAddr, logger)
	}

	server, err := web.NewServer(webConfig, logger)
	if err != nil {
		logger.Fatal("Failed to create web server", zap.Error(err))
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	logger.Info("Server started successfully. Press Ctrl+C to gracefully shutdown...")

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal, initiating graceful shutdown...", zap.Stringer("signal", sig))
	case err := <-webServerErrChan:
		logger.Fatal("Failed to start web server", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), webConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error stopping web server", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("Error flushing traces", zap.Error(err))
	}

	logger.Info("Graceful shutdown completed")
} // end main
