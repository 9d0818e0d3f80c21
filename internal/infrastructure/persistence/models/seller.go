package models

import (
	"time"

	"github.com/venta/backend/internal/domain/seller"
)

// BranchModel is the persistence model for the Branch entity
type BranchModel struct {
	BaseModel
	Name         string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Address      string  `gorm:"type:varchar(255)"`
	Type         string  `gorm:"type:varchar(30);not null"`
	Capacity     int     `gorm:"not null"`
	Active       bool    `gorm:"not null;default:true"`
	WarehouseRef *string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch
func (m *BranchModel) ToDomain() *seller.Branch {
	b := &seller.Branch{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
		Type:       seller.BranchType(m.Type),
		Capacity:   m.Capacity,
		Active:     m.Active,
	}
	if m.WarehouseRef != nil {
		b.WarehouseRef = *m.WarehouseRef
	}
	return b
}

// FromDomain populates the persistence model from a domain Branch
func (m *BranchModel) FromDomain(b *seller.Branch) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Address = b.Address
	m.Type = string(b.Type)
	m.Capacity = b.Capacity
	m.Active = b.Active
	m.WarehouseRef = nullableString(b.WarehouseRef)
}

// BranchModelFromDomain creates a new persistence model from a domain Branch
func BranchModelFromDomain(b *seller.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// SellerModel is the persistence model for the Seller aggregate root
type SellerModel struct {
	AggregateModel
	DNI          string       `gorm:"column:dni;type:varchar(8);not null;uniqueIndex"`
	FirstName    string       `gorm:"type:varchar(100);not null"`
	LastName     string       `gorm:"type:varchar(100);not null"`
	Email        string       `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone        string       `gorm:"type:varchar(15)"`
	Address      string       `gorm:"type:varchar(255)"`
	RegisteredOn time.Time    `gorm:"type:date;not null"`
	Category     string       `gorm:"type:varchar(20);not null;index"`
	Status       string       `gorm:"type:varchar(20);not null;index"`
	BranchID     int64        `gorm:"not null;index"`
	Branch       *BranchModel `gorm:"foreignKey:BranchID"`
	TaxID        *string      `gorm:"column:tax_id;type:varchar(11);uniqueIndex"`
	BankAccount  string       `gorm:"type:varchar(50)"`
	BankName     string       `gorm:"type:varchar(100)"`
	DocumentType string       `gorm:"type:varchar(20)"`
	EmployeeRef  *int64
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller.
// The branch is only set when it was preloaded.
func (m *SellerModel) ToDomain() *seller.Seller {
	s := &seller.Seller{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		DNI:               m.DNI,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		RegisteredOn:      m.RegisteredOn.UTC(),
		Category:          seller.Category(m.Category),
		Status:            seller.Status(m.Status),
		BankAccount:       m.BankAccount,
		BankName:          m.BankName,
		DocumentType:      seller.DocumentType(m.DocumentType),
	}
	if m.TaxID != nil {
		s.TaxID = *m.TaxID
	}
	if m.EmployeeRef != nil {
		s.EmployeeRef = *m.EmployeeRef
	}
	if m.Branch != nil {
		s.Branch = m.Branch.ToDomain()
	}
	return s
}

// FromDomain populates the persistence model from a domain Seller.
// Only the branch id is copied so that saving a seller never writes its branch.
func (m *SellerModel) FromDomain(s *seller.Seller) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.DNI = s.DNI
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.Email = s.Email
	m.Phone = s.Phone
	m.Address = s.Address
	m.RegisteredOn = s.RegisteredOn
	m.Category = string(s.Category)
	m.Status = string(s.Status)
	m.BranchID = s.BranchID()
	m.TaxID = nullableString(s.TaxID)
	m.BankAccount = s.BankAccount
	m.BankName = s.BankName
	m.DocumentType = string(s.DocumentType)
	m.EmployeeRef = nil
	if s.EmployeeRef != 0 {
		ref := s.EmployeeRef
		m.EmployeeRef = &ref
	}
}

// SellerModelFromDomain creates a new persistence model from a domain Seller
func SellerModelFromDomain(s *seller.Seller) *SellerModel {
	m := &SellerModel{}
	m.FromDomain(s)
	return m
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
