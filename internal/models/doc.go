// Package models defines the core domain models for the packs service.
//
// # Models
//
//   - User: a registered account that can obtain tokens
//   - Pack: a named collection of items, optionally owned by a user
//   - Item: a priced entry that always belongs to exactly one pack
//   - RevokedToken: a JWT identifier that must no longer be accepted
//
// Models carry no serialization tags. The HTTP layer maps them to its own
// request and response types, and each storage backend maps them to rows.
//
// Relationships are expressed with IDs (Item.PackID, Pack.OwnerID) rather
// than pointers. Pack.Items is populated by reads that traverse the
// relationship and is ignored on writes.
package models
