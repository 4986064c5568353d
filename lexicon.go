package reconcile

// Lexicon holds the keyword sets used to classify a transaction description
// as spending, income or a transfer. Keywords are matched case-insensitively
// as substrings, except for keywords of three characters or fewer which are
// matched on word boundaries ("pos", "atm", "gas").
type Lexicon struct {
	Spending    []string
	Income      []string
	TransferOut []string
	TransferIn  []string
	// CardPayments are patterns for credit-card bill payments. They look
	// like spending on a bank statement and like income on a card statement,
	// but they are transfers between the holder's own accounts and must not
	// contribute to the spending/income ratios.
	CardPayments []string
}

// DefaultLexicon returns the keyword sets used when an institution carries
// no override.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Spending: []string{
			"purchase", "fee", "interest", "charge", "penalty", "late",
			"withdrawal", "atm", "pos", "debit", "bill", "subscription", "grocery",
			"restaurant", "gas", "fuel", "shopping", "store", "market", "pharmacy",
			"medical", "insurance", "rent", "mortgage", "loan", "tax", "fine",
		},
		Income: []string{
			"deposit", "credit", "refund", "return", "cashback", "reward", "rebate",
			"salary", "payroll", "dividend", "interest earned", "bonus",
			"incoming", "received", "thank you", "adjustment credit", "reversal",
		},
		TransferOut: []string{
			"transfer to", "transfer out", "outgoing transfer", "wire out", "send",
			"transfer debit", "payment transaction",
		},
		TransferIn: []string{
			"transfer from", "transfer in", "incoming transfer", "wire in", "receive",
			"transfer credit", "deposit from", "internet transfer",
		},
		CardPayments: []string{
			"credit crd epay", "credit card epay", "cardpymt", "card payment",
			"gsbank payment", "applecard gsbank", "chase credit", "discover payment",
		},
	}
}

// Override adjusts the detector for one institution. Zero-valued fields keep
// the defaults.
type Override struct {
	Lexicon       *Lexicon
	FlipThreshold float64 // 0 keeps the default
}

// DetectorConfig configures sign-convention detection. The zero value selects
// the default lexicon, a minimum sample of three classified records, and a
// flip threshold of 0.5. Overrides are keyed by lowercase institution name;
// institution-specific behavior stays a data lookup rather than separate
// detector implementations.
type DetectorConfig struct {
	Lexicon       Lexicon
	MinSample     int
	FlipThreshold float64
	Overrides     map[string]Override
}
