// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free from
// ORM concerns.
//
// Key Principles:
//  1. Persistence models carry all GORM annotations, including the unique indexes
//     and foreign-key cascade policies the reconciliation engine relies on
//  2. Mappers convert between domain entities and persistence models
//  3. Virtual fields are stored flat here (street1/street2, two decimal coordinate
//     columns, the encoded lead time string) and decoded by the domain codecs
//
// Structure:
// - base.go: Base persistence model (id, timestamps)
// - partner.go: Customer and Address models
// - trade.go: Order, channel linkage and comment models
// - catalog.go: Brand, Product, ProductConfiguration and ProductOption models
// - delivery.go: DeliveryMethod, Delivery and DeliveryItem models
package models
