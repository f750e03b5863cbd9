package store

import "profanity/internal/platform/config"

// Config aggregates per backend configuration
type Config struct {
	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	AppName     string

	// ConnectRetries bounds the boot ping loop, 0 means the default of 20
	ConnectRetries int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// FromConfig reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* from root.
// Both backends are off unless their ENABLED key is set; a DBURL is then required
func FromConfig(root config.Conf, client, tag string) Config {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	var c Config
	if pgCfg.MayBool("ENABLED", false) {
		c.PG = PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", false),
			AppName:        client + "-" + tag,
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
		}
	}
	if chCfg.MayBool("ENABLED", false) {
		c.CH = CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: client,
			ClientTag:  tag,
		}
	}
	return c
}
