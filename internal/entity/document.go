package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/abubakr3800/sc-standards/constants"
)

// Document tracks one submitted PDF through its processing lifecycle.
type Document struct {
	ID           uuid.UUID           `json:"id"`
	SourcePath   string              `json:"source_path"`
	OriginalName string              `json:"original_name,omitempty"`
	Status       constants.JobStatus `json:"status"`
	SubmittedAt  time.Time           `json:"submitted_at"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
}
