package leads

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"frontdesk/pkg/logx"
	"frontdesk/pkg/persistence"
)

// DuplicateWindow is how long after a submission the same email counts as a
// duplicate. Duplicates are still stored, flagged, and acknowledged.
const DuplicateWindow = 24 * time.Hour

// Service captures leads into persistent storage.
type Service struct {
	ops    *persistence.DatabaseOperations
	logger *logx.Logger
}

// NewService creates a lead capture service over the given database operations.
func NewService(ops *persistence.DatabaseOperations) *Service {
	return &Service{
		ops:    ops,
		logger: logx.NewLogger("leads"),
	}
}

// generateReferenceID creates a short reference ID for user follow-up.
func generateReferenceID() string {
	return "SIPH-" + strings.ToUpper(uuid.NewString()[:8])
}

// Capture validates and stores a lead, returning a user-facing result.
// Validation failures and storage errors never panic; they come back as
// unsuccessful results with a safe message.
func (s *Service) Capture(name, email, conversationSummary string, inquiryType InquiryType) Result {
	if msg := ValidateName(name); msg != "" {
		return Result{Message: "Could not capture your information.", Error: msg}
	}
	if msg := ValidateEmail(email); msg != "" {
		return Result{Message: "Could not capture your information.", Error: msg}
	}
	if !inquiryType.Valid() {
		inquiryType = InquiryOther
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	isDuplicate, err := s.ops.HasRecentLead(email, time.Now().UTC().Add(-DuplicateWindow))
	if err != nil {
		// Treat the lead as fresh rather than losing it.
		s.logger.Warn("duplicate check failed: %v", err)
		isDuplicate = false
	}

	lead := &persistence.Lead{
		ReferenceID:         generateReferenceID(),
		Name:                name,
		Email:               email,
		ConversationSummary: conversationSummary,
		InquiryType:         string(inquiryType),
		IsDuplicate:         isDuplicate,
	}
	if err := s.ops.InsertLead(lead); err != nil {
		s.logger.Error("failed to store lead: %v", err)
		return Result{
			Message: "Could not save your information. Please try again.",
			Error:   err.Error(),
		}
	}

	s.logger.Info("lead captured: ref=%s duplicate=%v", lead.ReferenceID, isDuplicate)

	var message string
	if isDuplicate {
		message = fmt.Sprintf(
			"Thanks %s! We already have a recent inquiry from you. Your reference ID is %s. Our team will be in touch soon!",
			name, lead.ReferenceID,
		)
	} else {
		message = fmt.Sprintf(
			"Thanks %s! Your information has been saved. Your reference ID is %s. Our team will reach out within 24-48 hours.",
			name, lead.ReferenceID,
		)
	}

	return Result{
		Success:     true,
		ReferenceID: lead.ReferenceID,
		Message:     message,
		IsDuplicate: isDuplicate,
	}
}

// Lookup returns the stored lead for a reference ID.
func (s *Service) Lookup(referenceID string) (*persistence.Lead, error) {
	return s.ops.GetLeadByReference(referenceID)
}
