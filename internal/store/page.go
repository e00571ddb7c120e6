package store

// Page selects a window of a collection.
type Page struct {
	Limit  int
	Offset int
}
