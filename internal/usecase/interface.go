package usecase

import (
	"context"
	"io"

	"shop-reconciliation/internal/domain"
)

// ShopRepository is the backend of record the reconciliation pipeline consumes.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go ShopRepository
type ShopRepository interface {
	// ListShops returns picker options for shops with ARMS integration enabled.
	ListShops(ctx context.Context) ([]domain.ShopOption, error)
	// GetShop resolves the display name and tax id for one shop;
	// domain.ErrShopNotFound when the id does not resolve.
	GetShop(ctx context.Context, shopID string) (domain.ShopMeta, error)
	// GetAuthorityRows returns the backend transactions for the shop whose
	// date lies inside the range (the backend applies the filter).
	GetAuthorityRows(ctx context.Context, shopID string, rng domain.DateRange) ([]domain.AuthorityRow, error)
}

// LedgerSource decodes an uploaded ledger export into typed rows.
type LedgerSource interface {
	Parse(r io.Reader) ([]domain.LedgerRow, error)
}
