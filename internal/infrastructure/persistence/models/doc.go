// Package models holds the GORM table mappings for the seller context.
// Domain types stay free of ORM tags; each model converts to and from its
// domain counterpart with ToDomain and FromDomain.
package models
