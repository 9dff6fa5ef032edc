package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/dao"
	"github.com/opsight/opsight/pkg/database/models"
	"github.com/opsight/opsight/pkg/logger"
)

const (
	// DefaultChunkSize is the number of csv rows processed per transaction.
	DefaultChunkSize = 50000

	// insertBatchSize bounds one multi-row INSERT so a wide chunk cannot
	// exceed the store's statement parameter limit; the chunk transaction
	// still commits or rolls back as a whole.
	insertBatchSize = 500
)

type Config struct {
	CSVPath   string `validate:"required"`
	ChunkSize int    `validate:"gt=0"`
}

// Loader streams a delimited event file into the store, chunk by chunk. Each
// chunk is validated, reconciled against operators and sessions, and its
// event projection committed in one transaction. Chunks are strictly
// sequential; a committed chunk is visible to the next chunk's reconciliation
// queries and is never undone by a later failure.
type Loader struct {
	db     *gorm.DB
	config *Config
	log    *zap.SugaredLogger
}

func NewLoader(db *gorm.DB, config *Config) (*Loader, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid loader config: %w", err)
	}
	return &Loader{
		db:     db,
		config: config,
		log:    logger.ZapLogger("ingest"),
	}, nil
}

// Run processes the whole file and returns the total number of event rows
// inserted. On any fatal error the current chunk is rolled back, the error is
// returned, and rows committed by earlier chunks stay committed.
func (l *Loader) Run() (int64, error) {
	file, err := os.Open(l.config.CSVPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader, err := NewChunkReader(file, l.config.ChunkSize)
	if err != nil {
		return 0, err
	}

	var total int64
	for {
		records, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}

		inserted, err := l.loadChunk(reader.Columns(), records)
		total += inserted
		if err != nil {
			return total, err
		}
		l.log.Infof("inserted %d events (total: %d)", inserted, total)
	}

	l.log.Infof("done, total inserted events: %d", total)
	return total, nil
}

// loadChunk takes one raw batch through coercion, reconciliation and the
// transactional event insert.
func (l *Loader) loadChunk(columns map[string]int, records [][]string) (int64, error) {
	rows := parseRows(columns, records)
	if dropped := len(records) - len(rows); dropped > 0 {
		l.log.Debugf("dropped %d rows with unusable session id, operator id or timestamp", dropped)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	// reconciliation commits on its own so the chunk's events always find
	// their parents, even when an earlier run already created them
	if err := reconcile(l.db, rows); err != nil {
		return 0, err
	}

	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.Event)
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		return dao.NewEventDao(tx).BulkInsert(events, insertBatchSize)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return 0, fmt.Errorf("integrity violation inserting events, chunk rolled back: %w", err)
		}
		return 0, err
	}
	return int64(len(events)), nil
}
