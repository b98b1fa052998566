package intake

// Submission is the inbound application payload from the web form.
// clientName, clientEmail, clientPhone, totalFee and currentPayment are
// required; everything else is optional and rendered with field-specific
// placeholders when absent.
type Submission struct {
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail"`
	ClientPhone    string  `json:"clientPhone"`
	TotalFee       float64 `json:"totalFee"`
	CurrentPayment float64 `json:"currentPayment"`

	Constitution    string `json:"constitution,omitempty"`
	ClientPAN       string `json:"clientPAN,omitempty"`
	ClientAddress   string `json:"clientAddress,omitempty"`
	SignatoryName   string `json:"signatoryName,omitempty"`
	Designation     string `json:"designation,omitempty"`
	SignatoryPAN    string `json:"signatoryPAN,omitempty"`
	ServiceDate     string `json:"serviceDate,omitempty"`
	CaseReference   string `json:"caseReference,omitempty"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`

	SubmissionTimestamp string `json:"submissionTimestamp,omitempty"`
	UserAgent           string `json:"userAgent,omitempty"`

	// Percentage overrides for the fee split. Nil or zero falls back to the
	// 10/20/70 defaults. The three are independent; no sum check is applied.
	InitiationPercent   *float64 `json:"initiationPercent,omitempty"`
	ConfirmationPercent *float64 `json:"confirmationPercent,omitempty"`
	BalancePercent      *float64 `json:"balancePercent,omitempty"`

	// CalculatedFees, when supplied, is trusted verbatim and the percentage
	// split is skipped entirely.
	CalculatedFees *FeeBreakdown `json:"calculatedFees,omitempty"`
}

// FeeBreakdown is the three-tier split of the total service fee.
type FeeBreakdown struct {
	InitiationAmount   float64 `json:"initiationAmount"`
	ConfirmationAmount float64 `json:"confirmationAmount"`
	BalanceAmount      float64 `json:"balanceAmount"`
}

// SuccessResponse is the JSON body returned when both sends succeed.
type SuccessResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	ClientName    string  `json:"clientName"`
	PaymentAmount float64 `json:"paymentAmount"`
	Timestamp     string  `json:"timestamp"`
}

// ErrorResponse is the uniform JSON failure body. Details carries raw
// underlying error text for operator diagnostics and is only populated for
// server-side failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
