package repository

import (
	"context"
	"log/slog"

	"examforge/internal/entity"
)

type DomainStatStore interface {
	// Upsert adds the stat's counters onto the stored row, creating it if
	// missing. Pass deltas, not totals.
	Upsert(ctx context.Context, stat *entity.DomainStat) error
	List(ctx context.Context) ([]*entity.DomainStat, error)
}

type domainStatStore struct {
	db     *DB
	logger *slog.Logger
}

func NewDomainStatStore(db *DB, logger *slog.Logger) DomainStatStore {
	return &domainStatStore{db: db, logger: logger}
}

func (s *domainStatStore) Upsert(ctx context.Context, stat *entity.DomainStat) error {
	query := s.db.rebind(`INSERT INTO domain_stats
		(domain_id, domain_name, total_questions, total_shown, total_correct)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (domain_id) DO UPDATE SET
			domain_name = excluded.domain_name,
			total_questions = domain_stats.total_questions + excluded.total_questions,
			total_shown = domain_stats.total_shown + excluded.total_shown,
			total_correct = domain_stats.total_correct + excluded.total_correct`)
	_, err := s.db.ExecContext(ctx, query,
		stat.DomainID, stat.DomainName, stat.TotalQuestions, stat.TotalShown, stat.TotalCorrect)
	if err != nil {
		s.logger.Error("failed to upsert domain stat", "domain_id", stat.DomainID, "error", err)
		return err
	}
	return nil
}

func (s *domainStatStore) List(ctx context.Context) ([]*entity.DomainStat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT domain_id, domain_name,
		total_questions, total_shown, total_correct
		FROM domain_stats ORDER BY domain_id`)
	if err != nil {
		s.logger.Error("failed to list domain stats", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.DomainStat
	for rows.Next() {
		var st entity.DomainStat
		if err := rows.Scan(&st.DomainID, &st.DomainName,
			&st.TotalQuestions, &st.TotalShown, &st.TotalCorrect); err != nil {
			return nil, err
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}
