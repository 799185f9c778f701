package conveyor

// Item is an opaque, non-zero handle for a transported item. The zero value
// is reserved to mean "no item", so a slot's occupancy can be tested without
// any extra storage.
type Item uint64

// Valid reports whether it is usable as an item handle, i.e. non-zero.
func (it Item) Valid() bool {
	return it != 0
}
