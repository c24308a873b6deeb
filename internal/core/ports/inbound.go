package ports

import (
	"context"
	"io"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/foldertree"
)

// UploadRequest is the inbound shape of an explicit-context upload.
type UploadRequest struct {
	ProjectID string
	Filename  string
	MimeType  string
	Size      int64
	Context   domain.FilingContext
	Override  domain.FilingOverride
	Body      io.Reader
}

// DocumentUploader is the inbound contract for explicit-context upload
// orchestration. When the context's AddToDocuments flag is false the
// returned document is a preview: filing is resolved but nothing is
// persisted.
type DocumentUploader interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)
}

// HintFiler is the inbound contract for queued hint-based filing.
type HintFiler interface {
	FileByHint(ctx context.Context, documentID string, hint domain.ClassificationHint) error
}

// FolderTreeService rebuilds the navigable folder tree for a project.
type FolderTreeService interface {
	Tree(ctx context.Context, projectID string, pruned bool) (*foldertree.Node, error)
}

// TenderRegisterService exports the Procure-tier document register.
type TenderRegisterService interface {
	Export(ctx context.Context, projectID string) ([]byte, error)
}

// DocumentReader is the inbound read model for document metadata.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentContentReader streams a stored document's bytes along with
// its metadata. The caller closes the reader.
type DocumentContentReader interface {
	Content(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error)
}

// DocumentRemover soft deletes a document, freeing its display name
// for reuse.
type DocumentRemover interface {
	Remove(ctx context.Context, id string) error
}

// SettingsService reads and writes a project's active discipline and
// trade sets.
type SettingsService interface {
	Get(ctx context.Context, projectID string) (*domain.ProjectSettings, error)
	Put(ctx context.Context, settings domain.ProjectSettings) error
}
