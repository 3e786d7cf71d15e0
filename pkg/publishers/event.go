package publishers

import "time"

// Event kinds emitted by the watcher.
const (
	KindPoolStats   = "pool_stats"
	KindUserProfile = "user_profile"
	KindWorkers     = "workers"
	KindBlock       = "block"
	KindDailyReward = "daily_reward"
)

// Event represents the payload published downstream.
type Event struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	Kind        string `json:"kind"`
	// Key identifies deduplicated events (blocks, daily rewards); empty for snapshots.
	Key         string    `json:"key,omitempty"`
	Payload     any       `json:"payload"`
	CollectedAt time.Time `json:"collected_at"`
}

// NewEvent constructs an Event for the given account and payload.
func NewEvent(accountID, accountName, kind, key string, payload any) Event {
	return Event{
		AccountID:   accountID,
		AccountName: accountName,
		Kind:        kind,
		Key:         key,
		Payload:     payload,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes returns the message attributes queue-style sinks attach to an event.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"account_id": e.AccountID,
		"kind":       e.Kind,
	}
}
