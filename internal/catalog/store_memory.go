package catalog

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// MemStore keeps products and content in insertion order, which makes list
// responses and category filtering deterministic without a database.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
	prodIdx  map[string]int
	content  []Content
	contIdx  map[string]int
}

func NewMemStore() *MemStore {
	return &MemStore{
		prodIdx: make(map[string]int),
		contIdx: make(map[string]int),
	}
}

// NewSeededMemStore returns a MemStore preloaded with the demo bakery
// assortment, for local runs and tests.
func NewSeededMemStore() *MemStore {
	s := NewMemStore()
	seed := []Product{
		{ID: "p_truffle", Name: "Chocolate Truffle Cake", Category: "Cakes", Description: "Dark chocolate sponge layered with truffle cream", Price: decimal.NewFromInt(550), Tags: []string{"chocolate", "truffle"}, StockStatus: StockIn},
		{ID: "p_redvelvet", Name: "Red Velvet Cake", Category: "Cakes", Description: "Classic red velvet with cream cheese frosting", Price: decimal.NewFromInt(600), StockStatus: StockIn},
		{ID: "p_vanilla_cc", Name: "Vanilla Cupcake", Category: "Cupcakes", Description: "Vanilla sponge with buttercream swirl", Price: decimal.NewFromInt(60), StockStatus: StockIn},
		{ID: "p_ragi", Name: "Ragi Cookies", Category: "Cookies", Description: "Finger millet cookies with jaggery", Price: decimal.NewFromInt(120), Tags: []string{"healthy", "ragi"}, StockStatus: StockIn},
		{ID: "p_nankhatai", Name: "Nankhatai", Category: "Cookies", Description: "Traditional ghee shortbread cookies", Price: decimal.NewFromInt(90), StockStatus: StockOut},
	}
	for _, p := range seed {
		_ = s.CreateProduct(context.Background(), p)
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.prodIdx[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func (s *MemStore) CreateProduct(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prodIdx[p.ID]; ok {
		return ErrDuplicateID
	}
	s.prodIdx[p.ID] = len(s.products)
	s.products = append(s.products, p)
	return nil
}

func (s *MemStore) UpdateProduct(ctx context.Context, p Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.prodIdx[p.ID]
	if !ok {
		return false, nil
	}
	s.products[i] = p
	return true, nil
}

func (s *MemStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.prodIdx[id]
	if !ok {
		return false, nil
	}

	s.products = append(s.products[:i], s.products[i+1:]...)
	delete(s.prodIdx, id)
	for j := i; j < len(s.products); j++ {
		s.prodIdx[s.products[j].ID] = j
	}
	return true, nil
}

func (s *MemStore) ListContent(ctx context.Context, kind string) ([]Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Content, 0, len(s.content))
	for _, c := range s.content {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemStore) CreateContent(ctx context.Context, c Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contIdx[c.ID]; ok {
		return ErrDuplicateID
	}
	s.contIdx[c.ID] = len(s.content)
	s.content = append(s.content, c)
	return nil
}

func (s *MemStore) UpdateContent(ctx context.Context, c Content) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.contIdx[c.ID]
	if !ok {
		return false, nil
	}
	s.content[i] = c
	return true, nil
}

func (s *MemStore) DeleteContent(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.contIdx[id]
	if !ok {
		return false, nil
	}

	s.content = append(s.content[:i], s.content[i+1:]...)
	delete(s.contIdx, id)
	for j := i; j < len(s.content); j++ {
		s.contIdx[s.content[j].ID] = j
	}
	return true, nil
}
