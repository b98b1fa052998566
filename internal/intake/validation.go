package intake

import (
	"strings"

	apperrors "solvedet-intake/internal/common/errors"
)

// requiredField pairs a payload field name with its missing check. Order
// matters: validation reports the first missing field and stops.
type requiredField struct {
	name    string
	missing func(*Submission) bool
}

var requiredFields = []requiredField{
	{"clientName", func(s *Submission) bool { return strings.TrimSpace(s.ClientName) == "" }},
	{"clientEmail", func(s *Submission) bool { return strings.TrimSpace(s.ClientEmail) == "" }},
	{"clientPhone", func(s *Submission) bool { return strings.TrimSpace(s.ClientPhone) == "" }},
	{"totalFee", func(s *Submission) bool { return s.TotalFee == 0 }},
	{"currentPayment", func(s *Submission) bool { return s.CurrentPayment == 0 }},
}

// ValidateSubmission checks the five required fields in fixed order and
// returns a validation error naming the first one that is missing or zero.
func ValidateSubmission(sub *Submission) *apperrors.StandardError {
	for _, field := range requiredFields {
		if field.missing(sub) {
			return apperrors.NewMissingFieldError(field.name)
		}
	}
	return nil
}
