package domain

import "context"

// ManifestRepository defines persistence for production manifests.
type ManifestRepository interface {
	Create(ctx context.Context, m *ProductionManifest, status string) error
	GetByID(ctx context.Context, id string) (*ProductionManifest, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]ProductionManifest, error)
}
