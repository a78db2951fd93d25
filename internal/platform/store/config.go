package store

import (
	"strings"
	"time"

	"unirank/internal/platform/config"
)

// Driver selects the relational backend
type Driver string

const (
	DriverNone     Driver = ""
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DefaultSQLiteURL is used when the sqlite driver is selected without a DSN
const DefaultSQLiteURL = "file:unirank.db?_pragma=busy_timeout(5000)"

// Config aggregates per backend configuration
type Config struct {
	AppName string
	Driver  Driver

	PG     PGConfig
	SQLite SQLiteConfig
	Redis  RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ping attempts before Open gives up, 20 when zero
	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	URL         string
	MaxConns    int
	LogSQL      bool
	SlowQueryMs int
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled        bool
	URL            string
	ConnectRetries int
}

// FromConfig reads SERVICE_STORE_* and SERVICE_REDIS_* from root; the one DBURL feeds
// whichever driver is selected and is required for postgres
func FromConfig(root config.Conf, app string) Config {
	sc := root.Prefix("SERVICE_STORE_")
	rc := root.Prefix("SERVICE_REDIS_")

	driver := Driver(strings.ToLower(sc.MayEnum("DRIVER", string(DriverSQLite), string(DriverSQLite), string(DriverPostgres))))
	url := sc.MayString("DBURL", "")
	slow := sc.MayInt("SLOW_MS", 500)
	logSQL := sc.MayBool("LOG_SQL", false)

	cfg := Config{AppName: app, Driver: driver}
	switch driver {
	case DriverPostgres:
		cfg.PG = PGConfig{
			URL:            sc.MustString("DBURL"),
			MaxConns:       int32(sc.MayInt("MAX_CONNS", 4)),
			LogSQL:         logSQL,
			SlowQueryMs:    slow,
			ConnectRetries: sc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    sc.MayDuration("PING_TIMEOUT", 3*time.Second),
		}
	case DriverSQLite:
		cfg.SQLite = SQLiteConfig{
			URL:         url,
			MaxConns:    sc.MayInt("MAX_CONNS", 1),
			LogSQL:      logSQL,
			SlowQueryMs: slow,
		}
	}

	if u := rc.MayString("URL", ""); u != "" {
		cfg.Redis = RedisConfig{Enabled: true, URL: u, ConnectRetries: rc.MayInt("CONNECT_RETRIES", 5)}
	}
	return cfg
}
