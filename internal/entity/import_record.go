package entity

import (
	"time"

	"github.com/google/uuid"

	"examforge/constants"
)

// ImportRecord represents one completed or failed document import.
type ImportRecord struct {
	ID                uuid.UUID              `json:"id"`
	Filename          string                 `json:"filename"`
	FileHash          string                 `json:"file_hash"`
	ImportedAt        time.Time              `json:"imported_at"`
	QuestionsImported int                    `json:"questions_imported"`
	Status            constants.ImportStatus `json:"status"`
}
