package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const errMessageFileNotFound = "no such file or directory"

// PostgresConnPool returns a new postgres connection pool, used by initdb to
// probe store readiness before running the schema migration. size < 0 means
// default size.
func PostgresConnPool(ctx context.Context, databaseURI string, certPath string, size int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURI)
	if err != nil {
		return nil, fmt.Errorf("unable to get postgres pool config: %w", err)
	}

	cert, err := os.ReadFile(certPath) // #nosec G304
	if err != nil && !strings.Contains(err.Error(), errMessageFileNotFound) {
		return nil, fmt.Errorf("unable to read database cert file: %w", err)
	}
	if len(cert) > 0 { // #nosec G402
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(cert)
		config.ConnConfig.TLSConfig = &tls.Config{
			RootCAs:            caCertPool,
			InsecureSkipVerify: true, // #nosec G402
		}
	}

	if size > 0 {
		config.MaxConns = size
	}

	dbConnectionPool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return dbConnectionPool, nil
}
