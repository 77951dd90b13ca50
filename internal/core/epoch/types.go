package epoch

import "time"

// Epoch is one persisted bucket. LowerBound never changes after creation.
type Epoch struct {
	ID         int64
	LowerBound time.Time
}

// Counter is the running reply count of exactly one epoch.
type Counter struct {
	ID      int64
	EpochID int64
	Count   uint64
}
