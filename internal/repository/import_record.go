package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"examforge/constants"
	"examforge/internal/entity"
)

// ImportRecordStore is the import ledger: one row per finished document
// import, keyed by filename and content hash.
type ImportRecordStore interface {
	Record(ctx context.Context, rec *entity.ImportRecord) error
	Completed(ctx context.Context, filename, hashHex string) (bool, error)
}

type importRecordStore struct {
	db     *DB
	logger *slog.Logger
}

func NewImportRecordStore(db *DB, logger *slog.Logger) ImportRecordStore {
	return &importRecordStore{db: db, logger: logger}
}

func (s *importRecordStore) Record(ctx context.Context, rec *entity.ImportRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.ImportedAt.IsZero() {
		rec.ImportedAt = time.Now().UTC()
	}

	query := s.db.rebind(`INSERT INTO import_records
		(id, filename, file_hash, imported_at, questions_imported, status)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		rec.ID.String(), rec.Filename, rec.FileHash,
		rec.ImportedAt.Format(time.RFC3339), rec.QuestionsImported, string(rec.Status))
	if err != nil {
		s.logger.Error("failed to record import", "filename", rec.Filename, "error", err)
		return err
	}
	s.logger.Info("import recorded",
		"filename", rec.Filename,
		"status", rec.Status,
		"questions", rec.QuestionsImported)
	return nil
}

func (s *importRecordStore) Completed(ctx context.Context, filename, hashHex string) (bool, error) {
	var count int
	query := s.db.rebind(`SELECT COUNT(*) FROM import_records
		WHERE filename = ? AND file_hash = ? AND status = ?`)
	err := s.db.QueryRowContext(ctx, query, filename, hashHex,
		string(constants.ImportStatusCompleted)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
