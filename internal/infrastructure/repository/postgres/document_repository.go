package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026030401)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	// The partial unique index is the serialization point for
	// sequence-number assignment: two uploads racing to the same
	// display name lose here and re-resolve.
	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	folder_path TEXT NOT NULL,
	display_name TEXT NOT NULL,
	original_filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	version INTEGER NOT NULL DEFAULT 1,
	size_bytes BIGINT NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	manually_overridden BOOLEAN NOT NULL DEFAULT FALSE,
	filing_context JSONB,
	error_message TEXT,
	deleted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_live_display_name
	ON documents(project_id, folder_path, display_name) WHERE deleted_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_documents_project_live
	ON documents(project_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS project_settings (
	project_id TEXT PRIMARY KEY,
	disciplines JSONB NOT NULL DEFAULT '[]'::jsonb,
	trades JSONB NOT NULL DEFAULT '[]'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	contextJSON, err := marshalContext(doc.FilingContext)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, project_id, folder_path, display_name, original_filename, mime_type, storage_key,
	version, size_bytes, status, manually_overridden, filing_context, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		doc.ID, doc.ProjectID, doc.FolderPath, doc.DisplayName, doc.OriginalFilename, doc.MimeType,
		doc.StorageKey, doc.Version, doc.SizeBytes, string(doc.Status), doc.ManuallyOverridden,
		contextJSON, doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.WrapError(domain.ErrSequenceCollision, "insert document", err)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, project_id, folder_path, display_name, original_filename, mime_type, storage_key,
	version, size_bytes, status, manually_overridden, filing_context, error_message, deleted_at, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	var doc domain.Document
	var contextRaw []byte
	var status string
	var deletedAt sql.NullTime

	err := row.Scan(
		&doc.ID, &doc.ProjectID, &doc.FolderPath, &doc.DisplayName, &doc.OriginalFilename,
		&doc.MimeType, &doc.StorageKey, &doc.Version, &doc.SizeBytes, &status,
		&doc.ManuallyOverridden, &contextRaw, &doc.Error, &deletedAt, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "fetch document", err)
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	if len(contextRaw) > 0 {
		var fctx domain.FilingContext
		if err := json.Unmarshal(contextRaw, &fctx); err != nil {
			return nil, fmt.Errorf("unmarshal filing context: %w", err)
		}
		doc.FilingContext = &fctx
	}
	doc.Status = domain.DocumentStatus(status)
	if deletedAt.Valid {
		t := deletedAt.Time
		doc.DeletedAt = &t
	}
	return &doc, nil
}

func (r *DocumentRepository) ListLiveRefs(ctx context.Context, projectID string) ([]domain.DocumentRef, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT folder_path, display_name
FROM documents
WHERE project_id = $1 AND deleted_at IS NULL
`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query live documents: %w", err)
	}
	defer rows.Close()

	var refs []domain.DocumentRef
	for rows.Next() {
		var ref domain.DocumentRef
		if err := rows.Scan(&ref.Path, &ref.DisplayName); err != nil {
			return nil, fmt.Errorf("scan document ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document refs: %w", err)
	}
	return refs, nil
}

func (r *DocumentRepository) ListRegisterRows(ctx context.Context, projectID, pathPrefix string) ([]domain.RegisterRow, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT folder_path, display_name, version, created_at
FROM documents
WHERE project_id = $1 AND deleted_at IS NULL AND folder_path LIKE $2 || '%'
ORDER BY folder_path, display_name
`, projectID, pathPrefix)
	if err != nil {
		return nil, fmt.Errorf("query register rows: %w", err)
	}
	defer rows.Close()

	var out []domain.RegisterRow
	for rows.Next() {
		var row domain.RegisterRow
		if err := rows.Scan(&row.FolderPath, &row.DisplayName, &row.Version, &row.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan register row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate register rows: %w", err)
	}
	return out, nil
}

func (r *DocumentRepository) UpdateFiling(ctx context.Context, id string, filing domain.ResolvedFiling, status domain.DocumentStatus) error {
	contextJSON, err := marshalContext(&filing.Context)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET folder_path = $2, display_name = $3, manually_overridden = $4, filing_context = $5,
	status = $6, version = version + 1, updated_at = $7
WHERE id = $1 AND deleted_at IS NULL
`, id, filing.FolderPath, filing.DisplayName, filing.ManuallyOverridden, contextJSON,
		string(status), time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.WrapError(domain.ErrSequenceCollision, "update filing", err)
		}
		return fmt.Errorf("update filing: %w", err)
	}
	return requireRow(res, "update filing")
}

func (r *DocumentRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE documents
SET deleted_at = $2, updated_at = $2
WHERE id = $1 AND deleted_at IS NULL
`, id, now)
	if err != nil {
		return fmt.Errorf("soft delete document: %w", err)
	}
	return requireRow(res, "soft delete document")
}

func marshalContext(fctx *domain.FilingContext) ([]byte, error) {
	if fctx == nil {
		return nil, nil
	}
	raw, err := json.Marshal(fctx)
	if err != nil {
		return nil, fmt.Errorf("marshal filing context: %w", err)
	}
	return raw, nil
}

func requireRow(res sql.Result, operation string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, operation, sql.ErrNoRows)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
