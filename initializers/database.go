package initializers

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hsz/sarees-api/telemetry"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

var DB *gorm.DB

func ConnectToDB() {
	db, err := Open(Config.DBDriver, Config.DBURL)
	if err != nil {
		Logger.Error("failed to connect to database", "driver", Config.DBDriver, "error", err)
		os.Exit(1)
	}
	DB = db
	Logger.Info("connected to database", "driver", Config.DBDriver)
}

// Open returns a gorm handle for driver. MySQL and PostgreSQL connections go
// through an instrumented *sql.DB so queries show up as spans.
func Open(driver, dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.New(
		slog.NewLogLogger(Logger.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)}

	switch driver {
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for %s", driver)
		}
		sqlDB, err := telemetry.OpenDB("mysql", dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), gormConfig)

	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for %s", driver)
		}
		sqlDB, err := telemetry.OpenDB("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)

	case "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared&_foreign_keys=on"
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
		if err != nil {
			return nil, err
		}
		// sqlite has a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
