// Package models defines the core domain models for kasir.
//
// # Models
//
//   - MenuItem: an entry in the catalog that can be added to a cart
//   - CartLine: one item in the live cart with its quantity
//   - Transaction: a finalized sale in the append-only ledger
//   - PaymentOptions: the three suggested cash amounts for a total
//   - SyncStatus: the outcome of replicating a transaction to the remote sheet
//
// All amounts are int64 in the smallest whole currency unit. There is a
// single currency and no tax.
//
// # Ownership
//
// Transactions are immutable once recorded. They hold a copy of the cart
// lines taken at checkout, so later cart mutation never leaks into the
// ledger. Sync status is metadata kept beside the ledger, never inside it:
// the local ledger is authoritative and the remote sheet is a mirror.
package models
