package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

func TestSellerEventSerializer_RoundTripBranchChanged(t *testing.T) {
	serializer := NewSellerEventSerializer()

	s := &seller.Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DNI:               "12345678",
		FirstName:         "Juan",
		LastName:          "Pérez García",
		Email:             "juan.perez@empresa.com",
		Category:          seller.CategoryInternal,
		Branch:            &seller.Branch{BaseEntity: shared.BaseEntity{ID: 2}, Name: "Sede Norte"},
	}
	s.ID = 7
	original := seller.NewSellerBranchChangedEvent(s, "Sede Centro")

	data, err := serializer.Serialize(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"old_branch_name":"Sede Centro"`)
	assert.Contains(t, string(data), `"seller_name":"Juan Pérez García"`)

	decoded, err := serializer.Deserialize(seller.EventTypeSellerBranchChanged, data)
	require.NoError(t, err)

	event, ok := decoded.(*seller.SellerBranchChangedEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), event.EventID())
	assert.Equal(t, int64(7), event.AggregateID())
	assert.Equal(t, "Sede Norte", event.NewBranchName)
	assert.Equal(t, seller.CategoryInternal, event.Seller().Category)
}

func TestEventSerializer_UnknownType(t *testing.T) {
	serializer := NewSellerEventSerializer()

	_, err := serializer.Deserialize("OrderShipped", []byte(`{}`))
	assert.Error(t, err)
}

func TestEventSerializer_InvalidPayload(t *testing.T) {
	serializer := NewSellerEventSerializer()

	_, err := serializer.Deserialize(seller.EventTypeSellerCreated, []byte(`{not json`))
	assert.Error(t, err)
}
