package usecase

import (
	"context"
	"fmt"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/ports"
	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/taxonomy"
)

type TenderRegisterUseCase struct {
	repo   ports.DocumentRepository
	writer ports.RegisterWriter
}

func NewTenderRegisterUseCase(repo ports.DocumentRepository, writer ports.RegisterWriter) *TenderRegisterUseCase {
	return &TenderRegisterUseCase{repo: repo, writer: writer}
}

// Export renders the register of live Procure-tier documents as a
// workbook for tender package distribution.
func (uc *TenderRegisterUseCase) Export(ctx context.Context, projectID string) ([]byte, error) {
	if projectID == "" {
		return nil, domain.ValidationError("project_id", "is required")
	}

	rows, err := uc.repo.ListRegisterRows(ctx, projectID, taxonomy.TierProcure+"/")
	if err != nil {
		return nil, fmt.Errorf("list procure documents: %w", err)
	}

	data, err := uc.writer.Write(projectID, rows)
	if err != nil {
		return nil, fmt.Errorf("write register workbook: %w", err)
	}
	return data, nil
}
