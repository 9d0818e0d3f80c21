package seller

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockSellerRepository struct {
	mock.Mock
}

func (m *mockSellerRepository) FindByID(ctx context.Context, id int64) (*Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Seller), args.Error(1)
}

func (m *mockSellerRepository) FindAll(ctx context.Context, filter SellerFilter) ([]Seller, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Seller), args.Error(1)
}

func (m *mockSellerRepository) Save(ctx context.Context, s *Seller) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSellerRepository) ExistsByDocument(ctx context.Context, dni string) (bool, error) {
	args := m.Called(ctx, dni)
	return args.Bool(0), args.Error(1)
}

func (m *mockSellerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockSellerRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	args := m.Called(ctx, taxID)
	return args.Bool(0), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Lookup(ctx context.Context, dni string) (*Employee, error) {
	args := m.Called(ctx, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Employee), args.Error(1)
}
