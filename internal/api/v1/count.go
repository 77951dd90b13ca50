package v1

import "time"

// CountResponse is the body of GET /v1/count.
type CountResponse struct {
	// EpochID and CounterID identify the bucket the count belongs to.
	EpochID   int64 `json:"epoch_id"`
	CounterID int64 `json:"counter_id"`

	Count uint64 `json:"count"`

	// HasRolledOver is false until the first epoch change since startup.
	// While false the count only covers the time since the bot started.
	HasRolledOver bool `json:"has_rolled_over"`

	// WidthMinutes is the configured bucket width.
	WidthMinutes int64 `json:"width_minutes"`

	// Text is the same sentence the chat command answers with.
	Text string `json:"text"`
}

// NewCountResponse builds a response from the report fields.
func NewCountResponse(epochID, counterID int64, count uint64, hasRolledOver bool, width time.Duration, text string) CountResponse {
	return CountResponse{
		EpochID:       epochID,
		CounterID:     counterID,
		Count:         count,
		HasRolledOver: hasRolledOver,
		WidthMinutes:  int64(width / time.Minute),
		Text:          text,
	}
}
