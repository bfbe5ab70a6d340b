// Package db keeps the list of recently reviewed datasets in SQLite.
package db

import "time"

// Dataset is a dataset directory that was opened for review.
type Dataset struct {
	Dir           string
	Format        string
	Entries       int
	PendingReview int
	Deleted       int
	OpenedAt      time.Time
	SavedAt       *time.Time
}
