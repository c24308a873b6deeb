package ports

import (
	"context"
	"io"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

// DocumentRepository persists and reads document state. Create and
// UpdateFiling report domain.ErrSequenceCollision when the live
// (path, display name) uniqueness constraint is violated; callers
// re-resolve against a fresh snapshot on that signal.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListLiveRefs(ctx context.Context, projectID string) ([]domain.DocumentRef, error)
	ListRegisterRows(ctx context.Context, projectID, pathPrefix string) ([]domain.RegisterRow, error)
	UpdateFiling(ctx context.Context, id string, filing domain.ResolvedFiling, status domain.DocumentStatus) error
	SoftDelete(ctx context.Context, id string) error
}

// ProjectSettingsRepository stores the per-project active
// discipline/trade sets.
type ProjectSettingsRepository interface {
	Get(ctx context.Context, projectID string) (*domain.ProjectSettings, error)
	Upsert(ctx context.Context, settings domain.ProjectSettings) error
}

// ObjectStorage stores source document blobs.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes ingestion events for the external extraction
// pipeline and consumes the classification hints it produces.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeFilingHints(ctx context.Context, handler func(ctx context.Context, documentID string, hint domain.ClassificationHint) error) error
}

// RegisterWriter renders a tender document register as a downloadable
// workbook.
type RegisterWriter interface {
	Write(projectID string, rows []domain.RegisterRow) ([]byte, error)
}
