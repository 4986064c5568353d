package reconcile

import (
	"regexp"
	"strings"
)

// Convention is the sign convention used by one source batch.
type Convention string

const (
	// ConventionBanking records spending as negative amounts. This is the
	// global convention of the consolidated output.
	ConventionBanking Convention = "banking"
	// ConventionCreditCard records spending as positive amounts, the way
	// most card statements do.
	ConventionCreditCard Convention = "credit_card"
	// ConventionMixed means the batch shows contradictory signals.
	ConventionMixed Convention = "mixed"
	// ConventionUnknown means the batch carries too little signal to decide.
	ConventionUnknown Convention = "unknown"
)

// Kind is the classification of a single record's description.
type Kind int

const (
	Unclassified Kind = iota
	Spending
	Income
	TransferOut
	TransferIn
)

func (k Kind) String() string {
	switch k {
	case Spending:
		return "spending"
	case Income:
		return "income"
	case TransferOut:
		return "transfer-out"
	case TransferIn:
		return "transfer-in"
	default:
		return "unclassified"
	}
}

// Analysis is the outcome of inspecting one batch's sign convention.
type Analysis struct {
	Convention            Convention
	Confidence            float64 // in [0,1]
	SpendingPositiveRatio float64
	IncomePositiveRatio   float64
	SpendingCount         int
	IncomeCount           int
	TotalRecords          int
}

// Flip reports whether the batch's amounts must all be sign-flipped to match
// the banking convention. The decision is binary per batch: only a
// credit-card convention detected at or above the threshold triggers a flip.
func (a Analysis) flip(threshold float64) bool {
	return a.Convention == ConventionCreditCard && a.Confidence >= threshold
}

// Detector infers the sign convention of a source batch from keyword
// classification of its descriptions. It is stateless after construction and
// safe for concurrent use across batches.
type Detector struct {
	cfg   DetectorConfig
	short map[string]*regexp.Regexp // word-boundary patterns for short keywords
}

const (
	defaultMinSample     = 3
	defaultFlipThreshold = 0.5
)

// NewDetector builds a Detector. Zero-valued config fields take defaults.
func NewDetector(cfg DetectorConfig) *Detector {
	if len(cfg.Lexicon.Spending) == 0 && len(cfg.Lexicon.Income) == 0 {
		cfg.Lexicon = DefaultLexicon()
	}
	if cfg.MinSample == 0 {
		cfg.MinSample = defaultMinSample
	}
	if cfg.FlipThreshold == 0 {
		cfg.FlipThreshold = defaultFlipThreshold
	}
	d := &Detector{cfg: cfg, short: make(map[string]*regexp.Regexp)}
	d.compileShort(cfg.Lexicon)
	for _, ov := range cfg.Overrides {
		if ov.Lexicon != nil {
			d.compileShort(*ov.Lexicon)
		}
	}
	return d
}

func (d *Detector) compileShort(lex Lexicon) {
	for _, kw := range lex.Spending {
		if len(kw) <= 3 {
			if _, ok := d.short[kw]; !ok {
				d.short[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
}

// lexiconFor returns the lexicon and flip threshold for an institution,
// applying any configured override.
func (d *Detector) lexiconFor(institution string) (Lexicon, float64) {
	lex, threshold := d.cfg.Lexicon, d.cfg.FlipThreshold
	if ov, ok := d.cfg.Overrides[strings.ToLower(institution)]; ok {
		if ov.Lexicon != nil {
			lex = *ov.Lexicon
		}
		if ov.FlipThreshold != 0 {
			threshold = ov.FlipThreshold
		}
	}
	return lex, threshold
}

// Classify determines the kind of a single description for the given
// institution. Transfer patterns win over income and spending keywords:
// transfers conserve money within the holder's accounts and carry no
// information about the batch's sign convention.
func (d *Detector) Classify(institution, description string) Kind {
	lex, _ := d.lexiconFor(institution)
	return d.classify(lex, description)
}

func (d *Detector) classify(lex Lexicon, description string) Kind {
	if description == "" {
		return Unclassified
	}
	desc := strings.ToLower(description)

	for _, kw := range lex.TransferOut {
		if strings.Contains(desc, kw) {
			return TransferOut
		}
	}
	for _, kw := range lex.TransferIn {
		if strings.Contains(desc, kw) {
			return TransferIn
		}
	}
	// Credit-card bill payments classify as transfers out of a bank account.
	for _, kw := range lex.CardPayments {
		if strings.Contains(desc, kw) {
			return TransferOut
		}
	}
	for _, kw := range lex.Income {
		if strings.Contains(desc, kw) {
			return Income
		}
	}
	for _, kw := range lex.Spending {
		if len(kw) <= 3 {
			if re, ok := d.short[kw]; ok && re.MatchString(desc) {
				return Spending
			}
		} else if strings.Contains(desc, kw) {
			return Spending
		}
	}
	return Unclassified
}

// Analyze inspects one batch and decides which sign convention it uses.
// It never fails: absence of signal yields ConventionUnknown with zero
// confidence, not an error.
func (d *Detector) Analyze(b Batch) Analysis {
	a := Analysis{Convention: ConventionUnknown, TotalRecords: len(b.Records)}
	if len(b.Records) == 0 {
		return a
	}

	lex, _ := d.lexiconFor(batchInstitution(b))
	var spendingPositive, incomePositive int
	for _, r := range b.Records {
		switch d.classify(lex, r.Description) {
		case Spending:
			a.SpendingCount++
			if r.Amount.IsPositive() {
				spendingPositive++
			}
		case Income:
			a.IncomeCount++
			if r.Amount.IsPositive() {
				incomePositive++
			}
		}
	}
	if a.SpendingCount > 0 {
		a.SpendingPositiveRatio = float64(spendingPositive) / float64(a.SpendingCount)
	}
	if a.IncomeCount > 0 {
		a.IncomePositiveRatio = float64(incomePositive) / float64(a.IncomeCount)
	}

	a.Convention, a.Confidence = d.determine(a)
	return a
}

// determine turns the spending/income ratios into a convention and a
// confidence. Confidence grows with the number of classified records and is
// clamped to [0,1] by construction.
func (d *Detector) determine(a Analysis) (Convention, float64) {
	classified := a.SpendingCount + a.IncomeCount
	if classified < d.cfg.MinSample {
		return ConventionUnknown, 0.0
	}
	n := float64(classified)
	spend, income := a.SpendingPositiveRatio, a.IncomePositiveRatio

	// Strong separation needs at least two spending and one income record.
	if spend <= 0.2 && income >= 0.8 && a.SpendingCount >= 2 && a.IncomeCount >= 1 {
		return ConventionBanking, min(0.9, 0.4+n/15)
	}
	if spend >= 0.8 && income <= 0.2 && a.SpendingCount >= 2 && a.IncomeCount >= 1 {
		return ConventionCreditCard, min(0.9, 0.4+n/15)
	}

	// Moderate separation.
	if spend <= 0.3 && income >= 0.6 {
		return ConventionBanking, min(0.7, 0.3+n/20)
	}
	if spend >= 0.7 && income <= 0.4 {
		return ConventionCreditCard, min(0.7, 0.3+n/20)
	}

	if abs(spend-0.5) < 0.3 || abs(income-0.5) < 0.3 {
		return ConventionMixed, 0.2
	}
	return ConventionUnknown, 0.1
}

// Correct applies the binary sign decision to a batch: if the batch is
// detected as credit-card convention with sufficient confidence, every
// record's amount sign is flipped; otherwise the batch is returned
// unchanged. The returned Analysis and flag report what was decided.
func (d *Detector) Correct(b Batch) (Batch, Analysis, bool) {
	a := d.Analyze(b)
	_, threshold := d.lexiconFor(batchInstitution(b))
	if a.flip(threshold) {
		return b.Flip(), a, true
	}
	return b, a, false
}

// batchInstitution returns the institution shared by the batch's records.
// Batches originate from one file, so the first record is representative.
func batchInstitution(b Batch) string {
	if len(b.Records) == 0 {
		return ""
	}
	return b.Records[0].Institution
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
