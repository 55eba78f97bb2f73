package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cardly/internal/shared/config"
	appLogger "cardly/internal/shared/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the MySQL pool. verboseSQL logs every statement at debug level;
// otherwise only errors and slow queries reach the application log.
func Init(cfg *config.DatabaseConfig, verboseSQL bool) error {
	level := logger.Warn
	if verboseSQL {
		level = logger.Info
	}

	gormLogger := logger.New(
		&filteredLogger{},
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.GetDSN(),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	appLogger.Info("database connection established", "database", cfg.Database, "host", cfg.Host)
	return nil
}

// Get returns the database connection
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the database connection
func Close() error {
	dbMu.RLock()
	currentDB := db
	dbMu.RUnlock()

	if currentDB == nil {
		return nil
	}

	sqlDB, err := currentDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	appLogger.Info("database connection closed")
	return nil
}

type logSeverity int

const (
	severitySkip logSeverity = iota
	severityDebug
	severityWarn
	severityError
)

func classify(msg string) logSeverity {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "information_schema.schemata"), strings.Contains(lower, "select version()"):
		return severitySkip
	case strings.Contains(lower, "[error]"):
		return severityError
	case strings.Contains(lower, "slow sql"):
		return severityWarn
	default:
		return severityDebug
	}
}

// filteredLogger routes gorm output into the application logger and drops
// driver bootstrap queries.
type filteredLogger struct{}

func (l *filteredLogger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	switch classify(msg) {
	case severityError:
		appLogger.Error("database error", "details", msg)
	case severityWarn:
		appLogger.Warn("slow query", "details", msg)
	case severityDebug:
		appLogger.Debug("database query", "details", msg)
	}
}
