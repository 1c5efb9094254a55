package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clipforge/internal/domain"
)

// ManifestRepositoryPG implements domain.ManifestRepository using PostgreSQL.
// Manifests are stored as JSONB documents keyed by id.
type ManifestRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewManifestRepository constructs a new manifest repository instance.
func NewManifestRepository(pool *pgxpool.Pool) *ManifestRepositoryPG {
	return &ManifestRepositoryPG{pool: pool}
}

// Create persists a manifest document.
func (r *ManifestRepositoryPG) Create(ctx context.Context, m *domain.ProductionManifest, status string) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO manifests (id, user_id, status, document)
VALUES ($1, $2, $3, $4);
`, m.ID, m.UserID, status, doc)
	return err
}

// GetByID loads one manifest document.
func (r *ManifestRepositoryPG) GetByID(ctx context.Context, id string) (*domain.ProductionManifest, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `
SELECT document
FROM manifests
WHERE id = $1;
`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var m domain.ProductionManifest
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// ListByUser returns the most recent manifests belonging to a user.
func (r *ManifestRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.ProductionManifest, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
SELECT document
FROM manifests
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var manifests []domain.ProductionManifest
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var m domain.ProductionManifest
		if err := json.Unmarshal(doc, &m); err != nil {
			return nil, fmt.Errorf("unmarshal manifest: %w", err)
		}
		manifests = append(manifests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return manifests, nil
}
