package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/logger"
)

const (
	PostgresDialect = "postgres"
	SqliteDialect   = "sqlite"
)

var (
	gormDB   *gorm.DB
	gormOnce sync.Once
	// Direct database connection.
	// It is used:
	// - to setup/close connection because GORM V2 removed gorm.Close()
	// - to size the pool, because GORM V2 does not expose SetMaxOpenConns
	sqlDB *sql.DB
	log   = logger.ZapLogger("database")
)

type DatabaseConfig struct {
	URL        string `validate:"required"`
	Dialect    string `validate:"oneof=postgres sqlite"`
	CaCertPath string
	PoolSize   int `validate:"gte=1"`
}

// InitGormInstance opens the process-wide connection. The loader and the CLIs
// share this single instance across all chunks; close it with CloseGorm on exit.
func InitGormInstance(config *DatabaseConfig) error {
	var err error
	gormOnce.Do(func() {
		gormDB, sqlDB, err = NewGormConn(config)
		if err != nil {
			return
		}
		if config.PoolSize > 0 {
			sqlDB.SetMaxOpenConns(config.PoolSize)
		}
	})
	return err
}

func NewGormConn(config *DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt:          false,
		FullSaveAssociations: false,
		// surface unique/foreign-key failures as gorm.ErrDuplicatedKey and
		// gorm.ErrForeignKeyViolated so the loader can stop the run on them
		TranslateError: true,
	}

	switch config.Dialect {
	case PostgresDialect:
		urlObj, err := completePostgres(config.URL, config.CaCertPath)
		if err != nil {
			return nil, nil, err
		}
		sqlDBConn, err := sql.Open("postgres", urlObj.String())
		if err != nil {
			log.Errorw("failed to open database connection", "error", err)
			return nil, nil, err
		}
		gormDBConn, err := gorm.Open(postgres.New(postgres.Config{
			Conn:                 sqlDBConn,
			PreferSimpleProtocol: true,
		}), gormConfig)
		if err != nil {
			log.Errorw("failed to open gorm connection", "error", err)
			return nil, nil, err
		}
		return gormDBConn, sqlDBConn, nil
	case SqliteDialect:
		gormDBConn, err := gorm.Open(sqlite.Open(completeSqlite(config.URL)), gormConfig)
		if err != nil {
			log.Errorw("failed to open gorm connection", "error", err)
			return nil, nil, err
		}
		sqlDBConn, err := gormDBConn.DB()
		if err != nil {
			return nil, nil, err
		}
		return gormDBConn, sqlDBConn, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database dialect: %s", config.Dialect)
	}
}

func GetGorm() *gorm.DB {
	if gormDB == nil {
		log.Error("gorm connection is not initialized")
		return nil
	}
	return gormDB
}

func GetSqlDb() *sql.DB {
	if sqlDB == nil {
		log.Error("sqlDb connection is not initialized")
		return nil
	}
	return sqlDB
}

// CloseGorm closes the sql.DB connection backing the gorm instance.
func CloseGorm(sqlConn *sql.DB) {
	if sqlConn != nil {
		err := sqlConn.Close()
		if err != nil {
			log.Errorw("failed to close database connection", "error", err)
		}
	}
}

// completeSqlite turns foreign-key enforcement on; sqlite applies the pragma
// per connection, so it has to ride in the DSN for every pooled connection.
func completeSqlite(sqliteURI string) string {
	if strings.Contains(sqliteURI, "_foreign_keys") {
		return sqliteURI
	}
	separator := "?"
	if strings.Contains(sqliteURI, "?") {
		separator = "&"
	}
	return sqliteURI + separator + "_foreign_keys=on"
}

func completePostgres(postgresURI string, caCertPath string) (*url.URL, error) {
	urlObj, err := url.Parse(postgresURI)
	if err != nil {
		return nil, err
	}
	// only support verify-ca or disable(for test)
	query := urlObj.Query()
	_, statErr := os.Stat(caCertPath)
	if query.Get("sslmode") == "verify-ca" && statErr == nil {
		query.Set("sslrootcert", caCertPath)
	} else if query.Get("sslmode") == "" {
		query.Add("sslmode", "disable")
	}
	urlObj.RawQuery = query.Encode()
	return urlObj, nil
}
