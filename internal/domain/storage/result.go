package storage

// WriteResult reports the outcome of a repository write explicitly, so call
// sites never reach into driver-specific result metadata.
type WriteResult struct {
	ID           int64
	RowsAffected int64
}
