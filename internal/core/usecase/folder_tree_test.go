package usecase

import (
	"context"
	"testing"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/taxonomy"
)

type settingsFake struct {
	settings *domain.ProjectSettings
	getErr   error
	upserted []domain.ProjectSettings
}

func (f *settingsFake) Get(context.Context, string) (*domain.ProjectSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.settings, nil
}

func (f *settingsFake) Upsert(_ context.Context, s domain.ProjectSettings) error {
	f.upserted = append(f.upserted, s)
	return nil
}

func TestTreeNarrowsToActiveDisciplines(t *testing.T) {
	repo := &repoFake{refs: []domain.DocumentRef{{Path: "Consultants/Electrical", DisplayName: "a.pdf"}}}
	settings := &settingsFake{settings: &domain.ProjectSettings{
		ProjectID:   "proj-1",
		Disciplines: []string{"Electrical"},
		Trades:      []string{"Concrete"},
	}}
	uc := NewFolderTreeUseCase(settings, repo, taxonomy.New(taxonomy.DefaultCatalog()))

	tree, err := uc.Tree(context.Background(), "proj-1", false)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}

	var consultants []string
	for _, child := range tree.Children {
		if child.Name != "Consultants" {
			continue
		}
		for _, d := range child.Children {
			consultants = append(consultants, d.Name)
		}
	}
	if len(consultants) != 1 || consultants[0] != "Electrical" {
		t.Fatalf("expected only the active discipline, got %v", consultants)
	}
}

func TestTreePrunedDropsEmptyBranches(t *testing.T) {
	repo := &repoFake{refs: []domain.DocumentRef{{Path: "Consultants/Electrical", DisplayName: "a.pdf"}}}
	settings := &settingsFake{}
	uc := NewFolderTreeUseCase(settings, repo, taxonomy.New(taxonomy.DefaultCatalog()))

	tree, err := uc.Tree(context.Background(), "proj-1", true)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if tree == nil {
		t.Fatalf("expected pruned tree with one occupied branch")
	}
	if len(tree.Children) != 1 || tree.Children[0].Name != "Consultants" {
		t.Fatalf("expected only Consultants branch, got %+v", tree.Children)
	}
}

func TestTreePrunedEmptyProjectIsNil(t *testing.T) {
	uc := NewFolderTreeUseCase(&settingsFake{}, &repoFake{}, taxonomy.New(taxonomy.DefaultCatalog()))

	tree, err := uc.Tree(context.Background(), "proj-1", true)
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if tree != nil {
		t.Fatalf("expected nil tree for empty project")
	}
}

func TestTreeRequiresProjectID(t *testing.T) {
	uc := NewFolderTreeUseCase(&settingsFake{}, &repoFake{}, taxonomy.New(taxonomy.DefaultCatalog()))

	_, err := uc.Tree(context.Background(), "", false)
	if err == nil || !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
