package seller

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// MockSellerRepository is a mock implementation of seller.SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id int64) (*seller.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context, filter seller.SellerFilter) ([]seller.Seller, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) Save(ctx context.Context, s *seller.Seller) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSellerRepository) ExistsByDocument(ctx context.Context, dni string) (bool, error) {
	args := m.Called(ctx, dni)
	return args.Bool(0), args.Error(1)
}

func (m *MockSellerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockSellerRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	args := m.Called(ctx, taxID)
	return args.Bool(0), args.Error(1)
}

// MockBranchRepository is a mock implementation of seller.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindByID(ctx context.Context, id int64) (*seller.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindAll(ctx context.Context) ([]seller.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seller.Branch), args.Error(1)
}

func (m *MockBranchRepository) Save(ctx context.Context, b *seller.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBranchRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockDirectory is a mock implementation of seller.EmployeeDirectory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Lookup(ctx context.Context, dni string) (*seller.Employee, error) {
	args := m.Called(ctx, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Employee), args.Error(1)
}

// RecordingPublisher captures published events
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *RecordingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *RecordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]shared.DomainEvent, len(p.events))
	copy(result, p.events)
	return result
}

func (p *RecordingPublisher) Types() []string {
	events := p.Events()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}
