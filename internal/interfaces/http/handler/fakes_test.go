package handler

import (
	"context"
	"sort"
	"sync"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// memorySellers is a map-backed SellerRepository
type memorySellers struct {
	mu      sync.Mutex
	nextID  int64
	sellers map[int64]*seller.Seller
}

func newMemorySellers() *memorySellers {
	return &memorySellers{sellers: make(map[int64]*seller.Seller)}
}

func (m *memorySellers) FindByID(_ context.Context, id int64) (*seller.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sellers[id]
	if !ok {
		return nil, seller.ErrSellerNotFound
	}
	clone := *s
	return &clone, nil
}

func (m *memorySellers) FindAll(_ context.Context, filter seller.SellerFilter) ([]seller.Seller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]seller.Seller, 0, len(m.sellers))
	for _, s := range m.sellers {
		if filter.Matches(s) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memorySellers) Save(_ context.Context, s *seller.Seller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		m.nextID++
		s.ID = m.nextID
	}
	clone := *s
	m.sellers[s.ID] = &clone
	return nil
}

func (m *memorySellers) exists(match func(*seller.Seller) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sellers {
		if match(s) {
			return true
		}
	}
	return false
}

func (m *memorySellers) ExistsByDocument(_ context.Context, dni string) (bool, error) {
	return m.exists(func(s *seller.Seller) bool { return s.DNI == dni }), nil
}

func (m *memorySellers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.exists(func(s *seller.Seller) bool { return s.Email == email }), nil
}

func (m *memorySellers) ExistsByTaxID(_ context.Context, taxID string) (bool, error) {
	return m.exists(func(s *seller.Seller) bool { return taxID != "" && s.TaxID == taxID }), nil
}

// memoryBranches is a map-backed BranchRepository
type memoryBranches struct {
	mu       sync.Mutex
	nextID   int64
	branches map[int64]*seller.Branch
}

func newMemoryBranches() *memoryBranches {
	return &memoryBranches{branches: make(map[int64]*seller.Branch)}
}

func (m *memoryBranches) FindByID(_ context.Context, id int64) (*seller.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.branches[id]
	if !ok {
		return nil, seller.ErrBranchNotFound
	}
	clone := *b
	return &clone, nil
}

func (m *memoryBranches) FindAll(_ context.Context) ([]seller.Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]seller.Branch, 0, len(m.branches))
	for _, b := range m.branches {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memoryBranches) Save(_ context.Context, b *seller.Branch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		m.nextID++
		b.ID = m.nextID
	}
	clone := *b
	m.branches[b.ID] = &clone
	return nil
}

func (m *memoryBranches) ExistsByName(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.branches {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// recordingHandler collects every event it receives
type recordingHandler struct {
	mu    sync.Mutex
	types []string
}

func (h *recordingHandler) EventTypes() []string { return nil }

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.types = append(h.types, event.EventType())
	return nil
}

func (h *recordingHandler) received() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.types...)
}
