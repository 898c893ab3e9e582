package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/skinledger/internal/domain/models"
	"github.com/mamadbah2/skinledger/internal/repository/mongodb"
	"github.com/mamadbah2/skinledger/pkg/clients/steammarket"
)

// Service is the operation layer over the store. Every committed mutation is
// mirrored to the repository outside the store's critical section; a
// persistence failure is logged and the in-memory commit stands, since the
// store is the authority.
type Service struct {
	store  *Store
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewService wires a new ledger service instance.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: NewStore(), repo: repo, logger: logger}
}

// Load seeds the store from persistence. Called once at startup.
func (s *Service) Load(ctx context.Context) error {
	items, err := s.repo.LoadItems(ctx)
	if err != nil {
		return err
	}

	s.store.Load(items)
	s.logger.Info("ledger loaded", zap.Int("items", len(items)))
	return nil
}

// List returns all items in display order.
func (s *Service) List() []models.Item {
	return s.store.List()
}

// Totals aggregates over the whole ledger.
func (s *Service) Totals() models.Totals {
	return s.store.Totals()
}

// Search returns the items whose name matches the query plus totals over
// exactly those items.
func (s *Service) Search(query string) ([]models.Item, models.Totals) {
	return s.store.Search(query)
}

// Add validates and commits a new item. When no name is supplied, one is
// derived from the market listing link if the link is recognizable.
func (s *Service) Add(ctx context.Context, input models.ItemInput) (models.Item, error) {
	if input.ItemName == nil && input.ItemLink != nil {
		if name := steammarket.HashNameFromLink(string(*input.ItemLink)); name != "" {
			input.ItemName = models.Field(name)
		}
	}

	item, err := s.store.Create(input)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.repo.InsertItem(ctx, item); err != nil {
		s.logger.Error("failed to persist created item", zap.String("item_id", item.ItemID), zap.Error(err))
	}

	return item, nil
}

// Edit merges the supplied fields into an existing item.
func (s *Service) Edit(ctx context.Context, itemID string, input models.ItemInput) (models.Item, error) {
	item, err := s.store.Update(itemID, input)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.repo.ReplaceItem(ctx, item); err != nil {
		s.logger.Error("failed to persist updated item", zap.String("item_id", item.ItemID), zap.Error(err))
	}

	return item, nil
}

// Remove permanently deletes an item.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	if err := s.store.Delete(itemID); err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		s.logger.Error("failed to persist item deletion", zap.String("item_id", itemID), zap.Error(err))
	}

	return nil
}

// Links returns the distinct listing links currently in the ledger.
func (s *Service) Links() []string {
	return s.store.Links()
}

// RepriceLink sets the current price on every item referencing the link and
// persists the updated items.
func (s *Service) RepriceLink(ctx context.Context, link string, price decimal.Decimal) []models.Item {
	updated := s.store.RepriceLink(link, price)

	for _, item := range updated {
		if err := s.repo.ReplaceItem(ctx, item); err != nil {
			s.logger.Error("failed to persist repriced item", zap.String("item_id", item.ItemID), zap.Error(err))
		}
	}

	return updated
}
