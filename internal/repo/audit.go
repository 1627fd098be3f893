package repo

import (
	"context"

	"github.com/suryateja948/Restaurant-API/internal/domain"
)

type CatalogAuditRepository interface {
	Create(ctx context.Context, audit *domain.CatalogAudit) error
	GetByEntityID(ctx context.Context, entityID string, limit int) ([]domain.CatalogAudit, error)
}
