// Package models contains the GORM persistence models of the vending fleet tables.
// Domain entities stay free of ORM tags; each model converts to and from its entity
// with ToDomain and <Name>ModelFromDomain.
//
// Unique indexes and foreign keys carry the names the integrity rules refer to
// (uq_customers_tenant_tax_number, fk_devices_customer, ...), so a violation raised by
// the database can be reported with the same error as the application-level check.
// The SQL migrations under migrations/ declare the same names.
package models
