package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/filing"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
)

// maxSequenceRetries bounds how often a filing is re-resolved after
// the persistence layer reports a display-name collision.
const maxSequenceRetries = 3

// FilingObserver receives filing events for instrumentation. The
// prometheus metrics types implement it; tests use fakes.
type FilingObserver interface {
	FilingResolved(entry, category string)
	ClassificationFallback()
	SequenceCollisionRetry()
}

type nopObserver struct{}

func (nopObserver) FilingResolved(string, string) {}
func (nopObserver) ClassificationFallback()       {}
func (nopObserver) SequenceCollisionRetry()       {}

type UploadDocumentUseCase struct {
	repo       ports.DocumentRepository
	storage    ports.ObjectStorage
	queue      ports.MessageQueue
	classifier *filing.Classifier
	observer   FilingObserver
}

func NewUploadDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	classifier *filing.Classifier,
	observer FilingObserver,
) *UploadDocumentUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &UploadDocumentUseCase{
		repo:       repo,
		storage:    storage,
		queue:      queue,
		classifier: classifier,
		observer:   observer,
	}
}

// Upload files a document with an explicit filing context. When the
// context's AddToDocuments flag is false the filing is resolved for
// preview only and nothing is persisted. On a display-name collision
// the filing is re-resolved against a fresh snapshot.
func (uc *UploadDocumentUseCase) Upload(ctx context.Context, req ports.UploadRequest) (*domain.Document, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, domain.ValidationError("project_id", "is required")
	}

	fctx, err := uc.classifier.FromContext(req.Context)
	if err != nil {
		return nil, err
	}

	if !fctx.AddToDocuments {
		return uc.preview(ctx, req, fctx)
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(req.Filename))
	if err := uc.storage.Save(ctx, storageKey, req.Body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	var doc *domain.Document
	err = uc.withCollisionRetry(ctx, req.ProjectID, req.Override, func(refs []domain.DocumentRef) error {
		resolved, err := filing.Resolve(filing.ResolveInput{
			Context:          fctx,
			OriginalFilename: req.Filename,
			Override:         req.Override,
		}, refs)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		doc = &domain.Document{
			ID:                 id,
			ProjectID:          req.ProjectID,
			FolderPath:         resolved.FolderPath,
			DisplayName:        resolved.DisplayName,
			OriginalFilename:   req.Filename,
			MimeType:           req.MimeType,
			StorageKey:         storageKey,
			Version:            1,
			SizeBytes:          req.Size,
			Status:             domain.StatusFiled,
			ManuallyOverridden: resolved.ManuallyOverridden,
			FilingContext:      &fctx,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return uc.repo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	uc.observer.FilingResolved("upload", categoryOf(fctx))

	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}
	return doc, nil
}

// preview resolves the filing against the live snapshot without
// persisting anything; the caller only wants the destination shown.
func (uc *UploadDocumentUseCase) preview(ctx context.Context, req ports.UploadRequest, fctx domain.FilingContext) (*domain.Document, error) {
	refs, err := uc.repo.ListLiveRefs(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list live documents: %w", err)
	}
	resolved, err := filing.Resolve(filing.ResolveInput{
		Context:          fctx,
		OriginalFilename: req.Filename,
		Override:         req.Override,
	}, refs)
	if err != nil {
		return nil, err
	}

	return &domain.Document{
		ProjectID:          req.ProjectID,
		FolderPath:         resolved.FolderPath,
		DisplayName:        resolved.DisplayName,
		OriginalFilename:   req.Filename,
		MimeType:           req.MimeType,
		ManuallyOverridden: resolved.ManuallyOverridden,
		FilingContext:      &fctx,
	}, nil
}

// withCollisionRetry runs attempt with a fresh live snapshot until it
// succeeds, fails with a non-collision error, or the retry budget is
// spent. Overridden display names are not retried: re-resolving cannot
// change a name the caller pinned.
func (uc *UploadDocumentUseCase) withCollisionRetry(
	ctx context.Context,
	projectID string,
	override domain.FilingOverride,
	attempt func(refs []domain.DocumentRef) error,
) error {
	return runWithCollisionRetry(ctx, uc.repo, uc.observer, projectID, override, attempt)
}

func runWithCollisionRetry(
	ctx context.Context,
	repo ports.DocumentRepository,
	observer FilingObserver,
	projectID string,
	override domain.FilingOverride,
	attempt func(refs []domain.DocumentRef) error,
) error {
	for try := 0; ; try++ {
		refs, err := repo.ListLiveRefs(ctx, projectID)
		if err != nil {
			return fmt.Errorf("list live documents: %w", err)
		}

		err = attempt(refs)
		if err == nil {
			return nil
		}
		if !domain.IsKind(err, domain.ErrSequenceCollision) {
			return err
		}
		if override.DisplayName != "" {
			return err
		}
		if try == maxSequenceRetries {
			return domain.WrapError(domain.ErrSequenceCollision, "resolve filing",
				fmt.Errorf("exhausted %d retries", maxSequenceRetries))
		}
		observer.SequenceCollisionRetry()
	}
}

func categoryOf(ctx domain.FilingContext) string {
	switch ctx.Location {
	case domain.LocationConsultantCard, domain.LocationContractorCard:
		return filing.CategorySubmission
	case domain.LocationPlanCard:
		return filing.CategoryPlan
	default:
		if ctx.Invoice {
			return filing.CategoryInvoice
		}
		return filing.CategoryDocument
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
