package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrLeadNotFound is returned when a lead lookup matches no rows.
var ErrLeadNotFound = errors.New("lead not found")

// DatabaseOperations provides methods for lead storage operations.
type DatabaseOperations struct {
	db *sql.DB
}

// NewDatabaseOperations creates a new DatabaseOperations instance.
func NewDatabaseOperations(db *sql.DB) *DatabaseOperations {
	return &DatabaseOperations{db: db}
}

// InsertLead stores a lead record. The lead's CreatedAt is set to now if zero.
func (ops *DatabaseOperations) InsertLead(lead *Lead) error {
	createdAt := lead.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := ops.db.Exec(`
		INSERT INTO leads (reference_id, name, email, conversation_summary, inquiry_type, is_duplicate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ReferenceID, lead.Name, lead.Email, lead.ConversationSummary,
		lead.InquiryType, lead.IsDuplicate, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get lead id: %w", err)
	}
	lead.ID = id
	lead.CreatedAt = createdAt
	return nil
}

// HasRecentLead reports whether the email has a lead newer than since.
// The email must already be normalized (lowercased, trimmed).
func (ops *DatabaseOperations) HasRecentLead(email string, since time.Time) (bool, error) {
	var count int
	err := ops.db.QueryRow(`
		SELECT COUNT(*) FROM leads WHERE email = ? AND created_at >= ?`,
		email, since,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check recent leads: %w", err)
	}
	return count > 0, nil
}

// GetLeadByReference returns the lead with the given reference ID.
func (ops *DatabaseOperations) GetLeadByReference(referenceID string) (*Lead, error) {
	lead := &Lead{}
	err := ops.db.QueryRow(`
		SELECT id, reference_id, name, email, conversation_summary, inquiry_type, is_duplicate, created_at
		FROM leads WHERE reference_id = ?`,
		referenceID,
	).Scan(
		&lead.ID, &lead.ReferenceID, &lead.Name, &lead.Email,
		&lead.ConversationSummary, &lead.InquiryType, &lead.IsDuplicate, &lead.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead by reference: %w", err)
	}
	return lead, nil
}

// CountLeads returns the total number of stored leads.
func (ops *DatabaseOperations) CountLeads() (int, error) {
	var count int
	if err := ops.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}
