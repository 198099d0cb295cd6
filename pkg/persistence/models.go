package persistence

import "time"

// Lead represents a captured lead record.
type Lead struct {
	CreatedAt           time.Time `json:"created_at"`
	ReferenceID         string    `json:"reference_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	ConversationSummary string    `json:"conversation_summary,omitempty"`
	InquiryType         string    `json:"inquiry_type"`
	ID                  int64     `json:"id"`
	IsDuplicate         bool      `json:"is_duplicate"`
}
