// Package models contains GORM persistence models that map to database tables.
// They are kept apart from domain entities so the domain stays free of ORM
// tags. Money columns are decimal(12,2) and scan through shopspring/decimal.
//
// Structure:
//   - base.go: BaseModel and AggregateModel
//   - ledger.go: accounts and ledger_entries
//   - sales.go: orders, order_lines, payments, products, inventory
//   - reference.go: customers, locations and cards, which are only checked for existence
package models
