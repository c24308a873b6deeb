package usecase

import (
	"context"
	"fmt"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/foldertree"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/taxonomy"
)

type FolderTreeUseCase struct {
	settings ports.ProjectSettingsRepository
	repo     ports.DocumentRepository
	taxonomy *taxonomy.Taxonomy
}

func NewFolderTreeUseCase(
	settings ports.ProjectSettingsRepository,
	repo ports.DocumentRepository,
	tx *taxonomy.Taxonomy,
) *FolderTreeUseCase {
	return &FolderTreeUseCase{
		settings: settings,
		repo:     repo,
		taxonomy: tx,
	}
}

// Tree rebuilds the project's folder tree from the canonical folder
// list and the live document snapshot. With pruned set, branches with
// no files anywhere beneath them are dropped; a fully empty tree
// prunes to nil.
func (uc *FolderTreeUseCase) Tree(ctx context.Context, projectID string, pruned bool) (*foldertree.Node, error) {
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

	refs, err := uc.repo.ListLiveRefs(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list live documents: %w", err)
	}

	canonical := uc.taxonomy.CanonicalFolders(settings.Disciplines, settings.Trades)
	tree := foldertree.Build(canonical, refs)
	if pruned {
		return foldertree.FilterEmpty(tree), nil
	}
	return tree, nil
}
