package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/opsight/opsight/pkg/database"
	"github.com/opsight/opsight/pkg/ingest"
	"github.com/opsight/opsight/pkg/logger"
)

type loaderFlags struct {
	databaseConfig *database.DatabaseConfig
	loaderConfig   *ingest.Config
	logLevel       string
}

func parseFlags() *loaderFlags {
	flags := &loaderFlags{
		databaseConfig: &database.DatabaseConfig{},
		loaderConfig:   &ingest.Config{},
	}

	pflag.StringVar(&flags.loaderConfig.CSVPath, "csv", "",
		"Path of the delimited event file to ingest.")
	pflag.IntVar(&flags.loaderConfig.ChunkSize, "chunk-size", ingest.DefaultChunkSize,
		"Number of csv rows processed per transaction.")
	pflag.StringVar(&flags.databaseConfig.URL, "database-url", "",
		"The URL of the database server.")
	pflag.StringVar(&flags.databaseConfig.Dialect, "dialect", database.PostgresDialect,
		"The database dialect, 'postgres' or 'sqlite'.")
	pflag.StringVar(&flags.databaseConfig.CaCertPath, "ca-cert-path", "",
		"The path of the CA certificate for the database server.")
	pflag.IntVar(&flags.databaseConfig.PoolSize, "database-pool-size", 2,
		"The size of the database connection pool.")
	pflag.StringVar(&flags.logLevel, "log-level", string(logger.Info),
		"The log level: debug, info, warn or error.")
	pflag.Parse()

	return flags
}

func doMain() int {
	flags := parseFlags()
	logger.SetLogLevel(logger.LogLevel(flags.logLevel))
	log := logger.ZapLogger("loader")

	if err := validator.New().Struct(flags.databaseConfig); err != nil {
		log.Errorw("invalid database config", "error", err)
		return 1
	}

	if err := database.InitGormInstance(flags.databaseConfig); err != nil {
		log.Errorw("failed to initialize database connection", "error", err)
		return 1
	}
	defer database.CloseGorm(database.GetSqlDb())

	loader, err := ingest.NewLoader(database.GetGorm(), flags.loaderConfig)
	if err != nil {
		log.Errorw("failed to initialize loader", "error", err)
		return 1
	}

	total, err := loader.Run()
	if err != nil {
		log.Errorw("ingestion aborted", "error", err, "inserted", total)
		return 1
	}
	return 0
}

func main() {
	os.Exit(doMain())
}
