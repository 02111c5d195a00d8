package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	EngineSQLite = "sqlite"
	EngineMySQL  = "mysql"
)

type Config struct {
	AppPort string

	// Durable cache engine: sqlite (default) or mysql.
	DBEngine   string
	SQLitePath string
	MySQLHost  string
	MySQLPort  string
	MySQLDB    string
	MySQLUser  string
	MySQLPass  string

	// Remote document store (whole-document GET/PUT).
	BinURL    string
	MasterKey string

	// Capacity monitor.
	BinQuotaBytes     int64
	UsageIntervalSecs int

	// Optional idempotency store; middleware is skipped when unset.
	RedisAddr    string
	RedisDB      int
	IdempTTLSecs int

	// Whether payments may be recorded against an already-paid loan.
	AllowOverpayment bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		DBEngine:   getenv("DB_ENGINE", EngineSQLite),
		SQLitePath: getenv("SQLITE_PATH", "lendingbook.db"),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "lendingbook"),
		MySQLUser:  getenv("MYSQL_USER", "lendingbook"),
		MySQLPass:  getenv("MYSQL_PASS", "lendingbook"),

		BinURL:    getenv("BIN_URL", ""),
		MasterKey: getenv("MASTER_KEY", ""),

		BinQuotaBytes:     204800, // 200 KB free-plan ceiling
		UsageIntervalSecs: 60,

		RedisAddr:        getenv("REDIS_ADDR", ""),
		IdempTTLSecs:     300,
		AllowOverpayment: true,
	}
	if v := os.Getenv("BIN_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.BinQuotaBytes = n
		}
	}
	if v := os.Getenv("USAGE_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UsageIntervalSecs = n
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("ALLOW_OVERPAYMENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AllowOverpayment = b
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBEngine {
	case EngineSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case EngineMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	default:
		return fmt.Errorf("unknown DB_ENGINE %q", c.DBEngine)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
