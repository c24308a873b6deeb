package domain

import "time"

type DocumentStatus string

const (
	StatusPending DocumentStatus = "pending"
	StatusFiled   DocumentStatus = "filed"
	StatusFailed  DocumentStatus = "failed"
)

type Document struct {
	ID                 string         `json:"id"`
	ProjectID          string         `json:"project_id"`
	FolderPath         string         `json:"folder_path"`
	DisplayName        string         `json:"display_name"`
	OriginalFilename   string         `json:"original_filename"`
	MimeType           string         `json:"mime_type"`
	StorageKey         string         `json:"storage_key"`
	Version            int            `json:"version"`
	SizeBytes          int64          `json:"size_bytes"`
	Status             DocumentStatus `json:"status"`
	ManuallyOverridden bool           `json:"manually_overridden"`
	FilingContext      *FilingContext `json:"filing_context,omitempty"`
	Error              string         `json:"error,omitempty"`
	DeletedAt          *time.Time     `json:"deleted_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// DocumentRef is the slice of document state the filing core reads: the
// resolved folder path and the display name inside it. Uniqueness of
// (path, display name) among live documents is the invariant the
// resolver maintains when generating names.
type DocumentRef struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
}

// ProjectSettings narrows the discipline/trade catalogs to the sets a
// project actually uses. Empty lists mean the full catalog applies.
type ProjectSettings struct {
	ProjectID   string   `json:"project_id"`
	Disciplines []string `json:"disciplines"`
	Trades      []string `json:"trades"`
}
