package models

// Item is a priced entry belonging to a pack.
type Item struct {
	// ID is the unique identifier for the item.
	ID int64

	// PackID references the owning pack. The pack must exist.
	PackID int64

	// Name is the item name (unique within its pack).
	Name string

	// Price is the item price; never negative.
	Price float64

	// CreatedAt is the Unix timestamp when the item was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64
}

// ItemFilter narrows ListItems results. Zero values mean "no filter".
type ItemFilter struct {
	PackID int64
}
