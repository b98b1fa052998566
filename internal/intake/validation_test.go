package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "solvedet-intake/internal/common/errors"
)

func validSubmission() *Submission {
	return &Submission{
		ClientName:     "Test User",
		ClientEmail:    "t@example.com",
		ClientPhone:    "9999999999",
		TotalFee:       50000,
		CurrentPayment: 5000,
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	assert.Nil(t, ValidateSubmission(validSubmission()))
}

func TestValidateSubmission_MissingFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Submission)
	}{
		{"clientName", func(s *Submission) { s.ClientName = "" }},
		{"clientEmail", func(s *Submission) { s.ClientEmail = "" }},
		{"clientPhone", func(s *Submission) { s.ClientPhone = "   " }},
		{"totalFee", func(s *Submission) { s.TotalFee = 0 }},
		{"currentPayment", func(s *Submission) { s.CurrentPayment = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(sub)

			err := ValidateSubmission(sub)
			require.NotNil(t, err)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, err.Code)
			assert.Equal(t, "Missing required field: "+tt.field, err.Message)
		})
	}
}

func TestValidateSubmission_FirstMissingFieldWins(t *testing.T) {
	sub := validSubmission()
	sub.ClientEmail = ""
	sub.CurrentPayment = 0

	err := ValidateSubmission(sub)
	require.NotNil(t, err)
	assert.Equal(t, "Missing required field: clientEmail", err.Message)
}
