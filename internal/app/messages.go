package app

import (
	"github.com/jwulff/ttsedit/internal/compare"
	"github.com/jwulff/ttsedit/internal/db"
)

// OpenRequestMsg asks the model to open a dataset directory.
type OpenRequestMsg struct {
	Dir string
}

// RecentLoadedMsg carries recently opened datasets loaded from SQLite.
type RecentLoadedMsg struct {
	Datasets []db.Dataset
}

// DuplicatesFoundMsg carries the result of a background duplicate scan.
type DuplicatesFoundMsg struct {
	Groups []compare.Group
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}

// ClearNoticeMsg clears the status notice after a timeout.
type ClearNoticeMsg struct{}

type storeOpenedMsg struct{ store *db.Store }
