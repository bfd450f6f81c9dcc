package models

// Pack is a named collection of items.
type Pack struct {
	// ID is the unique identifier for the pack, assigned by the store
	// unless the caller upserts with an explicit ID.
	ID int64

	// Name is the display name of the pack (unique across packs).
	Name string

	// Description is free-form text shown alongside the name.
	Description string

	// OwnerID is the user who created the pack.
	// Nil for seeded packs, which any authenticated user may modify.
	OwnerID *int64

	// CreatedAt is the Unix timestamp when the pack was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64

	// Items are the items owned by this pack. Populated on reads only.
	Items []Item
}

// OwnedBy reports whether userID may modify the pack.
func (p *Pack) OwnedBy(userID int64) bool {
	return p.OwnerID == nil || *p.OwnerID == userID
}
