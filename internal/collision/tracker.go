// Package collision indexes rows by record identifier and detects identifiers
// that appear on more than one row.
package collision

// Tracker maps record identifiers to row positions.
// The first row registered for an identifier wins; later rows are counted as
// collisions.
type Tracker struct {
	rows       map[int32]int
	collisions int
}

// NewTracker creates a new identifier tracker.
func NewTracker() *Tracker {
	return &Tracker{
		rows: make(map[int32]int),
	}
}

// Track registers row for id. It returns false when id already belongs to a
// different row.
func (t *Tracker) Track(id int32, row int) bool {
	if existing, exists := t.rows[id]; exists {
		if existing != row {
			t.collisions++
			return false
		}

		return true
	}
	t.rows[id] = row

	return true
}

// Lookup returns the row registered for id.
func (t *Tracker) Lookup(id int32) (int, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// Collisions returns how many rows carried an identifier already in use.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Count returns the number of distinct identifiers.
func (t *Tracker) Count() int {
	return len(t.rows)
}
