package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/skinledger/internal/domain/models"
)

// Store is the authoritative in-memory item set, keyed by item id and kept in
// newest-first display order. One coarse lock covers validation, merge and
// ordering for each mutation; nothing inside the critical section performs
// I/O, so every operation completes in bounded time. Reads take the read lock
// and observe a consistent snapshot.
type Store struct {
	mu    sync.RWMutex
	items map[string]*models.Item
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*models.Item)}
}

// Load replaces the store contents with items restored from persistence,
// ordered newest-first by creation time.
func (s *Store) Load(items []models.Item) {
	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*models.Item, len(sorted))
	s.order = make([]string, 0, len(sorted))
	for i := range sorted {
		item := sorted[i]
		s.items[item.ItemID] = &item
		s.order = append(s.order, item.ItemID)
	}
}

// Create validates the input, assigns a fresh id and inserts the item at the
// front of the display order. Ids are never reused after deletion.
func (s *Store) Create(input models.ItemInput) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := buildItem(input)
	if err != nil {
		return models.Item{}, err
	}

	item.ItemID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()

	s.items[item.ItemID] = &item
	s.order = append([]string{item.ItemID}, s.order...)

	return item, nil
}

// Update merges the supplied fields into the identified item. On any
// validation or format failure the store is left exactly as before the call.
func (s *Store) Update(itemID string, input models.ItemInput) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[itemID]
	if !ok {
		return models.Item{}, &models.NotFoundError{ItemID: itemID}
	}

	merged, err := mergeItem(*existing, input)
	if err != nil {
		return models.Item{}, err
	}

	*existing = merged
	return merged, nil
}

// Delete permanently removes the identified item.
func (s *Store) Delete(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return &models.NotFoundError{ItemID: itemID}
	}

	delete(s.items, itemID)
	for i, id := range s.order {
		if id == itemID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// List returns all items in display order, with the 1-based ordinal stamped
// at call time.
func (s *Store) List() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(models.Item) bool { return true })
}

// Search returns the items whose name contains the query, case-insensitively,
// preserving display order, together with totals over exactly those matches.
func (s *Store) Search(query string) ([]models.Item, models.Totals) {
	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.collect(func(it models.Item) bool {
		return strings.Contains(strings.ToLower(it.ItemName), needle)
	})
	return matches, models.AggregateItems(matches)
}

// Totals aggregates over the full store contents.
func (s *Store) Totals() models.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.AggregateItems(s.collect(func(models.Item) bool { return true }))
}

// Links returns the distinct item links in display order.
func (s *Store) Links() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var links []string
	for _, id := range s.order {
		link := s.items[id].ItemLink
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// RepriceLink sets the current price on every item referencing the given
// link and returns copies of the updated items.
func (s *Store) RepriceLink(link string, price decimal.Decimal) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []models.Item
	for _, id := range s.order {
		item := s.items[id]
		if item.ItemLink != link {
			continue
		}
		item.CurrentPrice = price
		updated = append(updated, *item)
	}
	return updated
}

// collect copies matching items in display order, numbering them 1..n within
// the produced view. Callers must hold at least the read lock.
func (s *Store) collect(match func(models.Item) bool) []models.Item {
	result := make([]models.Item, 0, len(s.order))
	for _, id := range s.order {
		item := *s.items[id]
		if !match(item) {
			continue
		}
		item.ItemNumber = len(result) + 1
		result = append(result, item)
	}
	return result
}
