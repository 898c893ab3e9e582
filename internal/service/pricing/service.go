package pricing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/skinledger/internal/domain/models"
	"github.com/mamadbah2/skinledger/internal/repository/mongodb"
	"github.com/mamadbah2/skinledger/internal/service/ledger"
	"github.com/mamadbah2/skinledger/pkg/clients/steammarket"
)

// Service refreshes current market prices across the ledger. One listing
// link maps to many items, so prices are fetched once per distinct link and
// applied to every item referencing it.
type Service struct {
	ledger *ledger.Service
	client steammarket.Client
	repo   mongodb.Repository
	delay  time.Duration
	logger *zap.Logger

	mu            sync.Mutex
	lastRefreshed time.Time
	lastSnapshot  *models.PortfolioSnapshot
}

// NewService wires a pricing service. delay is the pause between market API
// calls, keeping the refresh under the API's rate limit.
func NewService(ledgerSvc *ledger.Service, client steammarket.Client, repo mongodb.Repository, delay time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger: ledgerSvc,
		client: client,
		repo:   repo,
		delay:  delay,
		logger: logger,
	}
}

// RefreshAll fetches the lowest listed price for every distinct link and
// reprices matching items. Individual link failures are logged and skipped;
// the refresh carries on. A portfolio snapshot is persisted afterwards.
func (s *Service) RefreshAll(ctx context.Context) error {
	links := s.ledger.Links()
	s.logger.Info("price refresh started", zap.Int("links", len(links)))

	var refreshed, failed int
	for i, link := range links {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.delay):
			}
		}

		hashName := steammarket.HashNameFromLink(link)
		if hashName == "" {
			s.logger.Warn("skipping unrecognizable listing link", zap.String("link", link))
			failed++
			continue
		}

		price, err := s.client.LowestPrice(ctx, hashName)
		if err != nil {
			s.logger.Warn("failed to fetch market price", zap.String("hash_name", hashName), zap.Error(err))
			failed++
			continue
		}

		updated := s.ledger.RepriceLink(ctx, link, price)
		refreshed++
		s.logger.Debug("link repriced",
			zap.String("hash_name", hashName),
			zap.String("price", price.String()),
			zap.Int("items", len(updated)))
	}

	snapshot := s.takeSnapshot(refreshed, failed)
	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("failed to persist portfolio snapshot", zap.Error(err))
	}

	s.mu.Lock()
	s.lastRefreshed = snapshot.RefreshedAt
	s.lastSnapshot = &snapshot
	s.mu.Unlock()

	s.logger.Info("price refresh finished",
		zap.Int("refreshed", refreshed),
		zap.Int("failed", failed))
	return nil
}

func (s *Service) takeSnapshot(refreshed, failed int) models.PortfolioSnapshot {
	now := time.Now().UTC()
	items := s.ledger.List()
	totals := s.ledger.Totals()

	return models.PortfolioSnapshot{
		RefreshedAt:        now,
		LinksRefreshed:     refreshed,
		LinksFailed:        failed,
		ItemCount:          len(items),
		NumberOfItems:      totals.NumberOfItems,
		TotalCost:          totals.TotalCost.Round(2).InexactFloat64(),
		TotalValue:         totals.TotalValue.Round(2).InexactFloat64(),
		TotalReturnDollar:  totals.TotalReturnDollar.Round(2).InexactFloat64(),
		TotalReturnPercent: totals.TotalReturnPercent.Round(2).InexactFloat64(),
		CreatedAt:          now,
	}
}

// Status describes the most recent refresh.
type Status struct {
	LastRefreshedAt *time.Time                `json:"last_refreshed_at"`
	Snapshot        *models.PortfolioSnapshot `json:"snapshot,omitempty"`
}

// Status reports when prices were last refreshed. LastRefreshedAt is nil
// until the first refresh completes.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRefreshed.IsZero() {
		return Status{}
	}

	refreshedAt := s.lastRefreshed
	return Status{LastRefreshedAt: &refreshedAt, Snapshot: s.lastSnapshot}
}
