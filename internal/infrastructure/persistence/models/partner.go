package models

import (
	"github.com/futurevend/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CustomerModel is the persistence model for the Customer aggregate.
// The tax number is unique per tenant.
type CustomerModel struct {
	AggregateModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_customers_tenant_tax_number,priority:1"`
	CompanyName string    `gorm:"type:varchar(200)"`
	FirstName   string    `gorm:"type:varchar(100);not null"`
	LastName    string    `gorm:"type:varchar(100);not null"`
	Address     string    `gorm:"type:varchar(300)"`
	City        string    `gorm:"type:varchar(100)"`
	PostCode    string    `gorm:"type:varchar(20)"`
	Country     string    `gorm:"type:varchar(100)"`
	Phone       string    `gorm:"type:varchar(50)"`
	Email       string    `gorm:"type:varchar(200)"`
	TaxNumber   string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_customers_tenant_tax_number,priority:2"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantAggregateRoot: tenantRoot(m.AggregateModel, m.TenantID),
		CustomerDetails: partner.CustomerDetails{
			CompanyName: m.CompanyName,
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Address:     m.Address,
			City:        m.City,
			PostCode:    m.PostCode,
			Country:     m.Country,
			Phone:       m.Phone,
			Email:       m.Email,
			TaxNumber:   m.TaxNumber,
		},
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		TenantID:    c.TenantID,
		CompanyName: c.CompanyName,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Address:     c.Address,
		City:        c.City,
		PostCode:    c.PostCode,
		Country:     c.Country,
		Phone:       c.Phone,
		Email:       c.Email,
		TaxNumber:   c.TaxNumber,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
