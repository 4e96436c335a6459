// Package models contains GORM persistence models that map to database tables.
// Domain aggregates stay free of ORM tags; each model converts to and from
// its aggregate with ToDomain and a ...ModelFromDomain constructor.
package models
