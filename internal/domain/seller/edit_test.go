package seller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestExternalEdit_NoOp(t *testing.T) {
	s := newTestSeller(t)
	before := *s
	beforeBranch := *s.Branch

	changed := NewExternalEdit().ApplyChanges(s, EditRequest{}, nil)

	assert.Empty(t, changed)
	assert.Equal(t, before, *s)
	assert.Equal(t, beforeBranch, *s.Branch)
}

func TestExternalEdit_PartialEmail(t *testing.T) {
	s := newTestSeller(t)

	changed := NewExternalEdit().ApplyChanges(s, EditRequest{Email: ptr("a@x.com")}, nil)

	assert.Equal(t, []string{FieldEmail}, changed)
	assert.Equal(t, "Ana", s.FirstName)
	assert.Equal(t, "Torres", s.LastName)
	assert.Equal(t, "a@x.com", s.Email)
}

func TestExternalEdit_SameValueIsNotAChange(t *testing.T) {
	s := newTestSeller(t)

	changed := NewExternalEdit().ApplyChanges(s, EditRequest{Phone: ptr(s.Phone)}, s.Branch)

	assert.Empty(t, changed)
}

func TestExternalEdit_BranchAndStatus(t *testing.T) {
	s := newTestSeller(t)
	north := newTestBranch(t, 5, "Sede Norte")

	changed := NewExternalEdit().ApplyChanges(s, EditRequest{
		Address: ptr("Av. Nueva 9"),
		Status:  ptr(StatusInactive),
	}, north)

	assert.Equal(t, []string{FieldAddress, FieldBranch, FieldStatus}, changed)
	assert.Equal(t, int64(5), s.BranchID())
	assert.Equal(t, StatusInactive, s.Status)
}

func TestExternalEdit_BankFieldsIgnoredForInternal(t *testing.T) {
	s := newTestSeller(t)
	s.Category = CategoryInternal
	s.TaxID = ""

	changed := NewExternalEdit().ApplyChanges(s, EditRequest{BankName: ptr("BBVA")}, nil)

	assert.Empty(t, changed)
	assert.Empty(t, s.BankName)
}

func TestEditRequest_Validate(t *testing.T) {
	assert.NoError(t, EditRequest{}.Validate())
	assert.True(t, EditRequest{}.IsEmpty())
	assert.Error(t, EditRequest{Email: ptr("bad")}.Validate())
	assert.Error(t, EditRequest{LastName: ptr("  ")}.Validate())
	assert.Error(t, EditRequest{Phone: ptr("1234567890123456")}.Validate())
	assert.Error(t, EditRequest{Status: ptr(Status("GONE"))}.Validate())
}
