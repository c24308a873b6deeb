package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
)

// DocumentsUseCase is the read/remove/download surface over stored
// documents.
type DocumentsUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
}

func NewDocumentsUseCase(repo ports.DocumentRepository, storage ports.ObjectStorage) *DocumentsUseCase {
	return &DocumentsUseCase{repo: repo, storage: storage}
}

func (uc *DocumentsUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// Content opens the stored blob for a document alongside its metadata.
// The caller owns the returned reader.
func (uc *DocumentsUseCase) Content(ctx context.Context, id string) (*domain.Document, io.ReadCloser, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document by id: %w", err)
	}
	if doc.DeletedAt != nil {
		return nil, nil, fmt.Errorf("open document content: %w", domain.ErrDocumentNotFound)
	}
	body, err := uc.storage.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open document content: %w", err)
	}
	return doc, body, nil
}

// Remove soft deletes a document. The display name it held becomes
// available to the sequence scan again only in the sense that deleted
// documents drop out of the live snapshot.
func (uc *DocumentsUseCase) Remove(ctx context.Context, id string) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("soft delete document: %w", err)
	}
	return nil
}

// SettingsUseCase manages a project's active discipline/trade sets.
type SettingsUseCase struct {
	settings ports.ProjectSettingsRepository
}

func NewSettingsUseCase(settings ports.ProjectSettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

func (uc *SettingsUseCase) Get(ctx context.Context, projectID string) (*domain.ProjectSettings, error) {
	if projectID == "" {
		return nil, domain.ValidationError("project_id", "is required")
	}
	settings, err := uc.settings.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project settings: %w", err)
	}
	if settings == nil {
		settings = &domain.ProjectSettings{ProjectID: projectID}
	}
	return settings, nil
}

func (uc *SettingsUseCase) Put(ctx context.Context, settings domain.ProjectSettings) error {
	if settings.ProjectID == "" {
		return domain.ValidationError("project_id", "is required")
	}
	settings.Disciplines = cleanList(settings.Disciplines)
	settings.Trades = cleanList(settings.Trades)
	if err := uc.settings.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("save project settings: %w", err)
	}
	return nil
}

// cleanList trims entries and drops blanks and duplicates while
// preserving order; order determines subfolder order in the taxonomy.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool)
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
