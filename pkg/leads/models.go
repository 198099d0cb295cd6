// Package leads implements lead capture: validation, duplicate detection,
// and reference ID generation for handed-off conversations.
package leads

// InquiryType categorizes what the lead is asking about.
type InquiryType string

const (
	// InquiryFreelanceProject is a request to build something.
	InquiryFreelanceProject InquiryType = "freelance_project"
	// InquiryAppQuestion is a question about an existing app.
	InquiryAppQuestion InquiryType = "app_question"
	// InquiryPartnership is a business partnership inquiry.
	InquiryPartnership InquiryType = "partnership"
	// InquiryOther is everything else.
	InquiryOther InquiryType = "other"
)

// Valid reports whether the inquiry type is one of the known values.
func (it InquiryType) Valid() bool {
	switch it {
	case InquiryFreelanceProject, InquiryAppQuestion, InquiryPartnership, InquiryOther:
		return true
	default:
		return false
	}
}

// Result reports the outcome of a lead capture attempt.
type Result struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
	Success     bool   `json:"success"`
	IsDuplicate bool   `json:"is_duplicate"`
}
