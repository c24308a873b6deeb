package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/filing"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
)

type FileByHintUseCase struct {
	repo       ports.DocumentRepository
	classifier *filing.Classifier
	observer   FilingObserver
	log        *slog.Logger
}

func NewFileByHintUseCase(
	repo ports.DocumentRepository,
	classifier *filing.Classifier,
	observer FilingObserver,
	log *slog.Logger,
) *FileByHintUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &FileByHintUseCase{
		repo:       repo,
		classifier: classifier,
		observer:   observer,
		log:        log,
	}
}

// FileByHint re-files a document from a content-derived classification
// hint. Manual overrides win over hints, deleted documents are left
// alone, and re-running the same hint against an unchanged document is
// a no-op.
func (uc *FileByHintUseCase) FileByHint(ctx context.Context, documentID string, hint domain.ClassificationHint) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}
	if doc.DeletedAt != nil {
		uc.log.Info("hint_skipped_deleted", "document_id", documentID)
		return nil
	}
	if doc.ManuallyOverridden {
		uc.log.Info("hint_skipped_overridden", "document_id", documentID)
		return nil
	}

	fctx, fellBack := uc.classifier.FromHint(hint)
	if fellBack {
		uc.observer.ClassificationFallback()
	}

	err = runWithCollisionRetry(ctx, uc.repo, uc.observer, doc.ProjectID, domain.FilingOverride{}, func(refs []domain.DocumentRef) error {
		resolved, err := filing.Resolve(filing.ResolveInput{
			Context:          fctx,
			OriginalFilename: doc.OriginalFilename,
		}, withoutSelf(refs, doc))
		if err != nil {
			return err
		}
		if resolved.FolderPath == doc.FolderPath && resolved.DisplayName == doc.DisplayName {
			return nil
		}
		return uc.repo.UpdateFiling(ctx, doc.ID, resolved, domain.StatusFiled)
	})
	if err != nil {
		return fmt.Errorf("re-file document %s: %w", documentID, err)
	}

	uc.observer.FilingResolved("hint", categoryOf(fctx))
	return nil
}

// withoutSelf removes the document's own (path, name) entry from the
// snapshot so re-filing into the same slot does not bump the sequence.
func withoutSelf(refs []domain.DocumentRef, doc *domain.Document) []domain.DocumentRef {
	out := make([]domain.DocumentRef, 0, len(refs))
	removed := false
	for _, ref := range refs {
		if !removed && ref.Path == doc.FolderPath && ref.DisplayName == doc.DisplayName {
			removed = true
			continue
		}
		out = append(out, ref)
	}
	return out
}
