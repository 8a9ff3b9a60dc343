package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"examforge/constants"
	"examforge/internal/entity"
)

type QuestionStore interface {
	Insert(ctx context.Context, q *entity.Question) error
	ExistsByStableID(ctx context.Context, stableID string) (bool, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*entity.Question, error)
	CountByDomain(ctx context.Context) (map[string]int, error)
}

type questionStore struct {
	db     *DB
	logger *slog.Logger
}

func NewQuestionStore(db *DB, logger *slog.Logger) QuestionStore {
	return &questionStore{db: db, logger: logger}
}

const questionColumns = `stable_id, text, choices, correct_answers, explanation,
	question_type, domain_id, source_file, source_page, exhibit_image,
	series_id, sequence_number, times_shown, times_correct, created_at`

func (s *questionStore) Insert(ctx context.Context, q *entity.Question) error {
	choices, err := json.Marshal(q.Choices)
	if err != nil {
		return fmt.Errorf("encode choices: %w", err)
	}
	answers, err := json.Marshal(q.CorrectAnswers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := s.db.rebind(`INSERT INTO questions (` + questionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, query,
		q.StableID, q.Text, string(choices), string(answers), nullStr(q.Explanation),
		string(q.QuestionType), q.DomainID, nullStr(q.SourceFile), q.SourcePage,
		nullStr(q.ExhibitImage), nullStr(q.SeriesID), q.SequenceNumber,
		q.TimesShown, q.TimesCorrect, createdAt.Format(time.RFC3339))
	if err != nil {
		s.logger.Error("failed to insert question", "stable_id", q.StableID, "error", err)
		return err
	}
	return nil
}

func (s *questionStore) ExistsByStableID(ctx context.Context, stableID string) (bool, error) {
	var count int
	query := s.db.rebind(`SELECT COUNT(*) FROM questions WHERE stable_id = ?`)
	if err := s.db.QueryRowContext(ctx, query, stableID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *questionStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *questionStore) List(ctx context.Context) ([]*entity.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY created_at, stable_id`)
	if err != nil {
		s.logger.Error("failed to list questions", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *questionStore) CountByDomain(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(domain_id, ''), COUNT(*) FROM questions GROUP BY domain_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var domain string
		var n int
		if err := rows.Scan(&domain, &n); err != nil {
			return nil, err
		}
		counts[domain] = n
	}
	return counts, rows.Err()
}

func scanQuestion(rows *sql.Rows) (*entity.Question, error) {
	var q entity.Question
	var choices, answers, questionType, createdAt string
	var explanation, domainID, sourceFile, exhibitImage, seriesID sql.NullString
	var sourcePage, sequenceNumber sql.NullInt64

	err := rows.Scan(&q.StableID, &q.Text, &choices, &answers, &explanation,
		&questionType, &domainID, &sourceFile, &sourcePage, &exhibitImage,
		&seriesID, &sequenceNumber, &q.TimesShown, &q.TimesCorrect, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(choices), &q.Choices); err != nil {
		return nil, fmt.Errorf("decode choices for %s: %w", q.StableID, err)
	}
	if err := json.Unmarshal([]byte(answers), &q.CorrectAnswers); err != nil {
		return nil, fmt.Errorf("decode answers for %s: %w", q.StableID, err)
	}
	q.QuestionType = constants.QuestionType(questionType)
	q.Explanation = strPtr(explanation)
	q.DomainID = domainID.String
	q.SourceFile = strPtr(sourceFile)
	q.SourcePage = int(sourcePage.Int64)
	q.ExhibitImage = strPtr(exhibitImage)
	q.SeriesID = strPtr(seriesID)
	q.SequenceNumber = int(sequenceNumber.Int64)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		q.CreatedAt = t
	}
	return &q, nil
}

func nullStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
