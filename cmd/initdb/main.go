package main

import (
	"context"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/opsight/opsight/pkg/database"
	"github.com/opsight/opsight/pkg/database/models"
	"github.com/opsight/opsight/pkg/logger"
)

const readinessTimeout = 30 * time.Second

type initdbFlags struct {
	databaseConfig *database.DatabaseConfig
	seedShifts     bool
	logLevel       string
}

func parseFlags() *initdbFlags {
	flags := &initdbFlags{
		databaseConfig: &database.DatabaseConfig{},
	}

	pflag.StringVar(&flags.databaseConfig.URL, "database-url", "",
		"The URL of the database server.")
	pflag.StringVar(&flags.databaseConfig.Dialect, "dialect", database.PostgresDialect,
		"The database dialect, 'postgres' or 'sqlite'.")
	pflag.StringVar(&flags.databaseConfig.CaCertPath, "ca-cert-path", "",
		"The path of the CA certificate for the database server.")
	pflag.IntVar(&flags.databaseConfig.PoolSize, "database-pool-size", 1,
		"The size of the database connection pool.")
	pflag.BoolVar(&flags.seedShifts, "seed-shifts", true,
		"Seed the canonical DAY/NIGHT shift definitions after migrating.")
	pflag.StringVar(&flags.logLevel, "log-level", string(logger.Info),
		"The log level: debug, info, warn or error.")
	pflag.Parse()

	return flags
}

// waitForPostgres probes the server over a pgx pool sized like the real
// connection so the migration does not run against a store that is still
// starting up.
func waitForPostgres(ctx context.Context, config *database.DatabaseConfig) error {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	pool, err := database.PostgresConnPool(ctx, config.URL, config.CaCertPath,
		int32(config.PoolSize))
	if err != nil {
		return err
	}
	defer pool.Close()
	return pool.Ping(ctx)
}

func doMain(ctx context.Context) int {
	flags := parseFlags()
	logger.SetLogLevel(logger.LogLevel(flags.logLevel))
	log := logger.ZapLogger("initdb")

	if err := validator.New().Struct(flags.databaseConfig); err != nil {
		log.Errorw("invalid database config", "error", err)
		return 1
	}

	if flags.databaseConfig.Dialect == database.PostgresDialect {
		if err := waitForPostgres(ctx, flags.databaseConfig); err != nil {
			log.Errorw("database is not ready", "error", err)
			return 1
		}
	}

	if err := database.InitGormInstance(flags.databaseConfig); err != nil {
		log.Errorw("failed to initialize database connection", "error", err)
		return 1
	}
	defer database.CloseGorm(database.GetSqlDb())

	db := database.GetGorm()
	if err := models.Migrate(db); err != nil {
		log.Errorw("failed to create tables", "error", err)
		return 1
	}
	log.Info("schema created")

	if flags.seedShifts {
		if err := models.SeedShiftDefinitions(db); err != nil {
			log.Errorw("failed to seed shift definitions", "error", err)
			return 1
		}
		log.Info("shift definitions seeded")
	}
	return 0
}

func main() {
	os.Exit(doMain(context.Background()))
}
