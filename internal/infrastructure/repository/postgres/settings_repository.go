package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

// SettingsRepository stores the per-project active discipline and
// trade lists that narrow the folder taxonomy.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns nil without error when the project has no stored
// settings yet; callers fall back to the full catalog.
func (r *SettingsRepository) Get(ctx context.Context, projectID string) (*domain.ProjectSettings, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT project_id, disciplines, trades
FROM project_settings
WHERE project_id = $1
`, projectID)

	var settings domain.ProjectSettings
	var disciplinesRaw, tradesRaw []byte
	err := row.Scan(&settings.ProjectID, &disciplinesRaw, &tradesRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan project settings: %w", err)
	}

	if err := json.Unmarshal(disciplinesRaw, &settings.Disciplines); err != nil {
		return nil, fmt.Errorf("unmarshal disciplines: %w", err)
	}
	if err := json.Unmarshal(tradesRaw, &settings.Trades); err != nil {
		return nil, fmt.Errorf("unmarshal trades: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, settings domain.ProjectSettings) error {
	disciplinesJSON, err := json.Marshal(settings.Disciplines)
	if err != nil {
		return fmt.Errorf("marshal disciplines: %w", err)
	}
	tradesJSON, err := json.Marshal(settings.Trades)
	if err != nil {
		return fmt.Errorf("marshal trades: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO project_settings (project_id, disciplines, trades, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (project_id)
DO UPDATE SET disciplines = EXCLUDED.disciplines, trades = EXCLUDED.trades, updated_at = EXCLUDED.updated_at
`, settings.ProjectID, disciplinesJSON, tradesJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert project settings: %w", err)
	}
	return nil
}
