package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. HELLOPAGE_WEB_LISTEN_PORT.
const EnvPrefix = "HELLOPAGE"

// short environment names for the settings people change most
var envAliases = map[string][]string{
	"web.host":        {"HELLOPAGE_HOST"},
	"web.listen_port": {"HELLOPAGE_PORT"},
	"web.debug":       {"HELLOPAGE_DEBUG"},
}

// Load builds the configuration from defaults, an optional config file and
// the environment, in that order. An empty path skips the file.
// The file format follows the extension (yaml, json, toml).
func Load(path string) (*MainConfig, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &MainConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.AppVersion = AppVersion
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, NewDefaultConfig())

	for key, names := range envAliases {
		// the long form stays first so it wins over the alias
		_ = v.BindEnv(append([]string{key, EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)...)
	}
	return v
}

// setDefaults registers every key, AutomaticEnv only overrides keys viper knows about
func setDefaults(v *viper.Viper, d *MainConfig) {
	v.SetDefault("tracing", d.Tracing)
	v.SetDefault("pprof_addr", d.PprofAddr)

	v.SetDefault("web.host", d.Web.Host)
	v.SetDefault("web.listen_port", d.Web.ListenPort)
	v.SetDefault("web.ssl", d.Web.SSL)
	v.SetDefault("web.cert_file", d.Web.CertFile)
	v.SetDefault("web.key_file", d.Web.KeyFile)
	v.SetDefault("web.debug", d.Web.Debug)
	v.SetDefault("web.trusted_proxies", d.Web.TrustedProxies)
	v.SetDefault("web.metrics_path", d.Web.MetricsPath)
	v.SetDefault("web.shutdown_timeout", d.Web.ShutdownTimeout)
	v.SetDefault("web.read_timeout", d.Web.ReadTimeout)
	v.SetDefault("web.write_timeout", d.Web.WriteTimeout)
	v.SetDefault("web.idle_timeout", d.Web.IdleTimeout)
	v.SetDefault("web.cors.allow_origins", d.Web.CORS.AllowOrigins)
	v.SetDefault("web.cors.max_age", d.Web.CORS.MaxAge)
}
