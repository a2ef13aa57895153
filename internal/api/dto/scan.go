package dto

// ScanRunResponse is the aggregate statistics object for one batch scan run.
// Counters only move on their respective paths: Errors increments on caught
// per-item failures, never on success.
type ScanRunResponse struct {
	RunID                string `json:"run_id"`
	UsersChecked         int    `json:"users_checked"`
	SubscriptionsChecked int    `json:"subscriptions_checked"`
	NotificationsCreated int    `json:"notifications_created"`
	EmailsSent           int    `json:"emails_sent"`
	Errors               int    `json:"errors"`
	// Partial is set when the run stopped early because the wall-clock
	// budget was exceeded.
	Partial    bool  `json:"partial,omitempty"`
	DurationMS int64 `json:"duration_ms"`
}
