package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/go-complaints/internal/config"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// sqliteDriver is go-sqlite3 with lower() replaced by a Unicode-aware version.
// SQLite's builtin only folds ASCII, which breaks case-insensitive title search.
const sqliteDriver = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// Open connects to the configured database. Postgres connections are retried
// to give a freshly started container time to accept connections.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         newGormLogger(log, cfg.Debug),
		TranslateError: true,
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriver, DSN: sqliteDSN(cfg.Path)}), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return db, nil
	case config.DriverPostgres:
		var db *gorm.DB
		var err error
		for i := 1; i <= connectAttempts; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
			if err == nil {
				break
			}
			log.Warn().Err(err).Int("attempt", i).Msg("database connection failed, retrying")
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect database after retries: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN enables foreign keys and a busy timeout on every pooled connection.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Ping runs a trivial query, used by the health endpoint.
func Ping(db *gorm.DB) error {
	return db.Exec("SELECT 1").Error
}

// zerologWriter adapts zerolog to gorm's logger.Writer.
type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.log.Info().Msgf(format, args...)
}

func newGormLogger(log zerolog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(zerologWriter{log: log.With().Str("component", "gorm").Logger()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
