package model

// SyncStatus tracks whether a locally stored transaction reached the remote
// record store.
type SyncStatus string

const (
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusInFlight SyncStatus = "in_flight"
	SyncStatusSynced   SyncStatus = "synced"
	SyncStatusFailed   SyncStatus = "failed"
)

// SyncStatusCounts is the number of transactions per sync status.
type SyncStatusCounts struct {
	Pending  int `json:"pending"`
	InFlight int `json:"inFlight"`
	Synced   int `json:"synced"`
	Failed   int `json:"failed"`
}

// PullResult describes a history import from the remote record store.
type PullResult struct {
	Fetched  int    `json:"fetched"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Warning  string `json:"warning,omitempty"`
}

// PushResult describes a retry pass over unsynced transactions. Skipped
// counts records another caller was already pushing.
type PushResult struct {
	Attempted int `json:"attempted"`
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}
