package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"examforge/constants"
	"examforge/internal/common"
	"examforge/internal/entity"
	"examforge/internal/ingest"
	"examforge/internal/parse"
	"examforge/internal/repository"
)

// DocumentParser parses one document into a report. Errors are carried
// in-band on the report's page issues.
type DocumentParser interface {
	ParseFile(ctx context.Context, path string) *parse.Report
}

// DomainNamer resolves a domain id to its display name.
type DomainNamer interface {
	DomainName(id string) string
}

// Importer runs the scan-review-import cycle against the repository.
type Importer struct {
	scanner   *ingest.Scanner
	parser    DocumentParser
	domains   DomainNamer
	questions repository.QuestionStore
	records   repository.ImportRecordStore
	stats     repository.DomainStatStore
	logger    *slog.Logger
}

func NewImporter(
	scanner *ingest.Scanner,
	parser DocumentParser,
	domains DomainNamer,
	questions repository.QuestionStore,
	records repository.ImportRecordStore,
	stats repository.DomainStatStore,
	logger *slog.Logger,
) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		scanner:   scanner,
		parser:    parser,
		domains:   domains,
		questions: questions,
		records:   records,
		stats:     stats,
		logger:    logger,
	}
}

// Scan walks dir and parses every document the import ledger does not
// already know. When the directory holds no documents at all and the
// questions table is empty, the session is filled with the built-in demo
// set so downstream surfaces have something to work with.
func (im *Importer) Scan(ctx context.Context, dir string) (*ScanSession, error) {
	log := im.logger
	if runID := common.RunIDFromContext(ctx); runID != "" {
		log = log.With("run_id", runID)
	}

	results, stats, err := im.scanner.ScanDir(ctx, dir, true)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	session := &ScanSession{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		FilesFound: int(stats.Matched),
	}

	if stats.Matched == 0 {
		count, err := im.questions.Count(ctx)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			fillDemoSession(session)
			log.Info("import.scan.demo", "questions", len(session.Questions))
		}
		return session, nil
	}

	for _, res := range results {
		if !res.New || res.Err != "" {
			continue
		}
		report := im.parser.ParseFile(ctx, res.Path)
		session.Reports = append(session.Reports, &FileReport{Report: report, FileHash: res.HashHex})
		session.Questions = append(session.Questions, report.Questions...)
		session.Issues.MissingAnswers += report.MissingAnswers
		session.Issues.BrokenChoices += report.BrokenChoices
		session.Issues.Duplicates += report.Duplicates
	}
	session.Hints = duplicateHints(session.Questions)

	log.Info("import.scan.ok",
		"dir", dir,
		"files_found", session.FilesFound,
		"new_files", len(session.Reports),
		"questions", len(session.Questions),
		"hints", len(session.Hints))
	return session, nil
}

// Import writes a session's questions to the repository. Edits are matched
// by the stable id each question had at scan time; edited questions are
// re-hashed before deduplication so a corrected question can no longer
// collide with its uncorrected form. Each question is imported at most
// once across the batch and the database. A session can be imported once.
func (im *Importer) Import(ctx context.Context, session *ScanSession, edits []QuestionEdit) (*ImportResult, error) {
	if session == nil {
		return nil, common.InvalidArgumentError("no scan session")
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.spent {
		return nil, common.InvalidArgumentError("scan session already imported")
	}

	byID := make(map[string]QuestionEdit, len(edits))
	for _, e := range edits {
		byID[e.StableID] = e
	}

	result := &ImportResult{}
	seen := make(map[string]struct{})
	domainCounts := make(map[string]int)

	for _, fr := range session.Reports {
		for _, q := range fr.Report.Questions {
			edit, hasEdit := byID[q.StableID()]
			if hasEdit && edit.Skip {
				result.Skipped++
				continue
			}
			if hasEdit {
				applyEdit(q, edit)
			}
			if !q.IsValid() {
				result.Skipped++
				continue
			}

			id := q.StableID()
			if _, dup := seen[id]; dup {
				result.Skipped++
				continue
			}
			seen[id] = struct{}{}

			exists, err := im.questions.ExistsByStableID(ctx, id)
			if err != nil {
				return nil, err
			}
			if exists {
				result.Skipped++
				continue
			}

			if err := im.questions.Insert(ctx, toEntity(q, id, fr.Report.Filename, session.Demo)); err != nil {
				return nil, err
			}
			result.Imported++
			domainCounts[q.DomainID]++
		}
	}

	ids := make([]string, 0, len(domainCounts))
	for id := range domainCounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		stat := &entity.DomainStat{
			DomainID:       id,
			DomainName:     im.domains.DomainName(id),
			TotalQuestions: domainCounts[id],
		}
		if err := im.stats.Upsert(ctx, stat); err != nil {
			return nil, err
		}
	}

	if !session.Demo {
		for _, fr := range session.Reports {
			rec := &entity.ImportRecord{
				Filename:          fr.Report.Filename,
				FileHash:          fr.FileHash,
				QuestionsImported: fr.Report.ValidQuestions,
				Status:            recordStatus(fr.Report),
			}
			if err := im.records.Record(ctx, rec); err != nil {
				return nil, err
			}
		}
	}

	total, err := im.questions.Count(ctx)
	if err != nil {
		return nil, err
	}
	result.TotalInDB = total

	session.spent = true
	im.logger.Info("import.run.ok",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"total_in_db", result.TotalInDB)
	return result, nil
}

// QuestionCount reports how many questions are stored.
func (im *Importer) QuestionCount(ctx context.Context) (int, error) {
	return im.questions.Count(ctx)
}

// Status reports whether dir holds anything worth importing, without
// parsing a single page.
func (im *Importer) Status(ctx context.Context, dir string) (*Status, error) {
	count, err := im.questions.Count(ctx)
	if err != nil {
		return nil, err
	}

	results, stats, err := im.scanner.ScanDir(ctx, dir, true)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	newFiles := []string{}
	for _, res := range results {
		if res.New && res.Err == "" {
			newFiles = append(newFiles, res.Filename)
		}
	}

	return &Status{
		QuestionsInDB: count,
		PDFFilesFound: int(stats.Matched),
		NewFiles:      newFiles,
		NeedsImport:   count == 0 || len(newFiles) > 0,
	}, nil
}

// recordStatus marks documents that produced nothing because extraction
// itself broke as failed, so a later scan retries them. Documents that
// parsed, even to zero valid questions, are done.
func recordStatus(report *parse.Report) constants.ImportStatus {
	if report.TotalQuestions == 0 && len(report.PageIssues[0]) > 0 {
		return constants.ImportStatusFailed
	}
	return constants.ImportStatusCompleted
}

// applyEdit overwrites the question's fields with the edit's populated
// ones. Empty fields keep the scanned value.
func applyEdit(q *parse.Question, edit QuestionEdit) {
	if edit.Text != "" {
		q.Text = edit.Text
	}
	if len(edit.Choices) > 0 {
		q.Choices = edit.Choices
	}
	if len(edit.CorrectAnswers) > 0 {
		q.CorrectAnswers = edit.CorrectAnswers
	}
	if edit.DomainID != "" {
		q.DomainID = edit.DomainID
	}
}

func toEntity(q *parse.Question, stableID, filename string, demo bool) *entity.Question {
	var source *string
	if !demo {
		source = &filename
	}
	return &entity.Question{
		StableID:       stableID,
		Text:           q.Text,
		Choices:        q.Choices,
		CorrectAnswers: q.CorrectAnswers,
		Explanation:    optStr(q.Explanation),
		QuestionType:   q.QuestionType,
		DomainID:       q.DomainID,
		SourceFile:     source,
		SourcePage:     q.SourcePage,
		ExhibitImage:   optStr(q.ExhibitImage),
		SeriesID:       optStr(q.SeriesID),
		SequenceNumber: q.SequenceNumber,
	}
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
