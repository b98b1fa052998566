package intake

// Default percentage split of the total service fee.
const (
	defaultInitiationPercent   = 10.0
	defaultConfirmationPercent = 20.0
	defaultBalancePercent      = 70.0
)

// DeriveFees computes the three-tier breakdown. A supplied calculatedFees
// structure is used verbatim, even if the amounts do not sum to totalFee.
// Otherwise each tier is totalFee scaled by its percentage, taking the
// per-field override when present and non-zero.
func DeriveFees(sub *Submission) FeeBreakdown {
	if sub.CalculatedFees != nil {
		return *sub.CalculatedFees
	}

	return FeeBreakdown{
		InitiationAmount:   sub.TotalFee * percentOr(sub.InitiationPercent, defaultInitiationPercent) / 100,
		ConfirmationAmount: sub.TotalFee * percentOr(sub.ConfirmationPercent, defaultConfirmationPercent) / 100,
		BalanceAmount:      sub.TotalFee * percentOr(sub.BalancePercent, defaultBalancePercent) / 100,
	}
}

func percentOr(override *float64, fallback float64) float64 {
	if override == nil || *override == 0 {
		return fallback
	}
	return *override
}
