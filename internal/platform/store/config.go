package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName is reported to both servers
	AppName string

	// PingTimeout bounds each startup ping, zero means 3s
	PingTimeout time.Duration

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	// LogSQL logs every statement, otherwise only slow or failed ones
	LogSQL    bool
	SlowQuery time.Duration
	// StartupWait caps how long Open retries the first ping, zero means 15s
	StartupWait time.Duration
}

// CHConfig configures the clickhouse client
type CHConfig struct {
	Enabled bool
	URL     string
	// ClientTag is reported next to AppName in system.query_log
	ClientTag string
}

func (c Config) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return 3 * time.Second
	}
	return c.PingTimeout
}

func (c PGConfig) startupWait() time.Duration {
	if c.StartupWait <= 0 {
		return 15 * time.Second
	}
	return c.StartupWait
}
