package reconcile

import (
	"testing"
)

func TestClassify(t *testing.T) {
	d := NewDetector(DetectorConfig{})

	tests := []struct {
		description string
		want        Kind
	}{
		{"STARBUCKS COFFEE PURCHASE", Spending},
		{"ATM WITHDRAWAL", Spending},
		{"Shell gas station", Spending},
		{"Monthly subscription", Spending},
		{"PAYROLL DIRECT DEPOSIT", Income},
		{"Quarterly dividend", Income},
		{"CASHBACK REWARD", Income},
		{"Online Transfer to Savings", TransferOut},
		{"Payment Transaction", TransferOut},
		{"Transfer from Checking", TransferIn},
		{"Internet Transfer", TransferIn},
		// Card bill payments look like income on a card statement but are
		// transfers between the holder's own accounts.
		{"CHASE CREDIT CRD EPAY", TransferOut},
		{"APPLECARD GSBANK PAYMENT", TransferOut},
		{"Paris Baguette", Unclassified},
		{"", Unclassified},
		// Short keywords match on word boundaries only.
		{"GASOLINE ALLEY DINER", Unclassified},
		{"POS TERMINAL 42", Spending},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := d.Classify("", tt.description); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.description, got, tt.want)
			}
		})
	}
}

// rec builds a minimal valid record for detection and matching tests.
func rec(date string, amount float64, description string) Record {
	return Record{
		Date:        MustParseDate(date),
		Amount:      A(amount),
		Description: description,
		Account:     "0547",
		Institution: "firsttech",
	}
}

func TestAnalyzeCreditCardConvention(t *testing.T) {
	// A card export: spending is recorded positive, income negative. The two
	// unclassifiable records must be flipped along with everything else.
	b := Batch{Source: "chase.csv", Records: []Record{
		rec("2025-01-05", 26.40, "Paris Baguette"),
		rec("2025-01-02", -791.99, "Payment Transaction"),
		rec("2025-01-03", 5.75, "Starbucks Coffee purchase"),
		rec("2025-01-04", 42.10, "Shell gas station"),
		rec("2025-01-06", 88.00, "Whole Foods market"),
		rec("2025-01-10", -120.00, "Cashback reward"),
	}}

	d := NewDetector(DetectorConfig{})
	corrected, a, flipped := d.Correct(b)

	if a.Convention != ConventionCreditCard {
		t.Fatalf("Convention = %s, want %s", a.Convention, ConventionCreditCard)
	}
	if a.Confidence < 0.5 {
		t.Errorf("Confidence = %.2f, want >= 0.5", a.Confidence)
	}
	if a.SpendingCount != 3 || a.IncomeCount != 1 {
		t.Errorf("counts = %d spending, %d income, want 3 and 1", a.SpendingCount, a.IncomeCount)
	}
	if !flipped {
		t.Fatal("Correct() did not flip a credit-card batch")
	}
	if got := corrected.Records[0].Amount; !got.Equal(A(-26.40)) {
		t.Errorf("record 0 amount = %s, want -26.40", got)
	}
	if got := corrected.Records[1].Amount; !got.Equal(A(791.99)) {
		t.Errorf("record 1 amount = %s, want 791.99", got)
	}
}

func TestAnalyzeBankingConvention(t *testing.T) {
	b := Batch{Source: "checking.csv", Records: []Record{
		rec("2025-01-03", -5.75, "Starbucks Coffee purchase"),
		rec("2025-01-04", -42.10, "Shell gas station"),
		rec("2025-01-06", -88.00, "Whole Foods market"),
		rec("2025-01-10", 2500.00, "Payroll direct deposit"),
	}}

	d := NewDetector(DetectorConfig{})
	corrected, a, flipped := d.Correct(b)

	if a.Convention != ConventionBanking {
		t.Fatalf("Convention = %s, want %s", a.Convention, ConventionBanking)
	}
	if flipped {
		t.Fatal("Correct() flipped a banking batch")
	}
	for i := range b.Records {
		if !corrected.Records[i].Amount.Equal(b.Records[i].Amount) {
			t.Errorf("record %d amount changed from %s to %s", i, b.Records[i].Amount, corrected.Records[i].Amount)
		}
	}
}

func TestAnalyzeMinimumSample(t *testing.T) {
	// Two classified records are below the default minimum of three.
	b := Batch{Source: "sparse.csv", Records: []Record{
		rec("2025-01-03", 5.75, "Starbucks Coffee purchase"),
		rec("2025-01-04", 42.10, "Shell gas station"),
		rec("2025-01-05", 26.40, "Paris Baguette"),
	}}

	d := NewDetector(DetectorConfig{})
	a := d.Analyze(b)
	if a.Convention != ConventionUnknown {
		t.Errorf("Convention = %s, want %s", a.Convention, ConventionUnknown)
	}
	if a.Confidence != 0 {
		t.Errorf("Confidence = %.2f, want 0", a.Confidence)
	}
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	d := NewDetector(DetectorConfig{})
	corrected, a, flipped := d.Correct(Batch{Source: "empty.csv"})
	if a.Convention != ConventionUnknown || a.Confidence != 0 {
		t.Errorf("empty batch: got %s (%.2f), want %s (0.00)", a.Convention, a.Confidence, ConventionUnknown)
	}
	if flipped {
		t.Error("empty batch was flipped")
	}
	if len(corrected.Records) != 0 {
		t.Errorf("empty batch gained %d records", len(corrected.Records))
	}
}

func TestAnalyzeMixedConvention(t *testing.T) {
	// Spending split evenly across signs is a contradictory signal.
	b := Batch{Source: "odd.csv", Records: []Record{
		rec("2025-01-03", 5.75, "Starbucks Coffee purchase"),
		rec("2025-01-04", -42.10, "Shell gas station"),
		rec("2025-01-10", 2500.00, "Payroll direct deposit"),
	}}

	d := NewDetector(DetectorConfig{})
	a := d.Analyze(b)
	if a.Convention != ConventionMixed {
		t.Errorf("Convention = %s, want %s", a.Convention, ConventionMixed)
	}
	if a.Confidence != 0.2 {
		t.Errorf("Confidence = %.2f, want 0.20", a.Confidence)
	}
}

func TestAnalyzeIgnoresTransfers(t *testing.T) {
	// Transfers conserve money within the holder's accounts; they must not
	// contribute to either ratio.
	b := Batch{Source: "transfers.csv", Records: []Record{
		rec("2025-01-02", -791.99, "Payment Transaction"),
		rec("2025-01-03", 500.00, "Transfer from Savings"),
		rec("2025-01-04", -200.00, "Online transfer to brokerage"),
	}}

	d := NewDetector(DetectorConfig{})
	a := d.Analyze(b)
	if a.SpendingCount != 0 || a.IncomeCount != 0 {
		t.Errorf("counts = %d spending, %d income, want 0 and 0", a.SpendingCount, a.IncomeCount)
	}
	if a.Convention != ConventionUnknown {
		t.Errorf("Convention = %s, want %s", a.Convention, ConventionUnknown)
	}
}

func TestDetectorInstitutionOverride(t *testing.T) {
	// An institution whose exports use idiosyncratic wording gets its own
	// lexicon; other institutions keep the default.
	override := DefaultLexicon()
	override.Spending = append(override.Spending, "achat")
	cfg := DetectorConfig{
		Overrides: map[string]Override{
			"banque": {Lexicon: &override},
		},
	}
	d := NewDetector(cfg)

	if got := d.Classify("banque", "ACHAT CARTE 0547"); got != Spending {
		t.Errorf("override institution: Classify = %s, want %s", got, Spending)
	}
	if got := d.Classify("firsttech", "ACHAT CARTE 0547"); got != Unclassified {
		t.Errorf("default institution: Classify = %s, want %s", got, Unclassified)
	}
}

func TestDetectorOverrideThreshold(t *testing.T) {
	// Raising the flip threshold for one institution blocks the flip even
	// when the convention is detected as credit card.
	records := []Record{
		rec("2025-01-03", 5.75, "Starbucks Coffee purchase"),
		rec("2025-01-04", 42.10, "Shell gas station"),
		rec("2025-01-06", 88.00, "Whole Foods market"),
		rec("2025-01-10", -120.00, "Cashback reward"),
	}
	b := Batch{Source: "card.csv", Records: records}

	d := NewDetector(DetectorConfig{
		Overrides: map[string]Override{
			"firsttech": {FlipThreshold: 0.95},
		},
	})
	_, a, flipped := d.Correct(b)
	if a.Convention != ConventionCreditCard {
		t.Fatalf("Convention = %s, want %s", a.Convention, ConventionCreditCard)
	}
	if flipped {
		t.Error("batch flipped despite override threshold 0.95")
	}
}

func TestConfidenceGrowsWithSample(t *testing.T) {
	small := Batch{Source: "small.csv", Records: []Record{
		rec("2025-01-03", 5.75, "Starbucks Coffee purchase"),
		rec("2025-01-04", 42.10, "Shell gas station"),
		rec("2025-01-10", -120.00, "Cashback reward"),
	}}
	large := Batch{Source: "large.csv"}
	day := MustParseDate("2025-01-01")
	for i := 0; i < 10; i++ {
		r := rec(day.Add(i).String(), 10.0+float64(i), "Grocery store purchase")
		large.Records = append(large.Records, r)
	}
	large.Records = append(large.Records, rec("2025-01-15", -120.00, "Cashback reward"))

	d := NewDetector(DetectorConfig{})
	as, al := d.Analyze(small), d.Analyze(large)
	if as.Convention != ConventionCreditCard || al.Convention != ConventionCreditCard {
		t.Fatalf("conventions = %s, %s, want both %s", as.Convention, al.Convention, ConventionCreditCard)
	}
	if al.Confidence <= as.Confidence {
		t.Errorf("confidence did not grow with sample size: %.2f -> %.2f", as.Confidence, al.Confidence)
	}
	if al.Confidence > 0.9 {
		t.Errorf("Confidence = %.2f, want capped at 0.90", al.Confidence)
	}
}

func TestBatchFlipKeepsBalance(t *testing.T) {
	bal := A(1500.00)
	r := rec("2025-01-05", 26.40, "Paris Baguette")
	r.Balance = &bal
	flipped := Batch{Source: "b", Records: []Record{r}}.Flip()

	if got := flipped.Records[0].Amount; !got.Equal(A(-26.40)) {
		t.Errorf("amount = %s, want -26.40", got)
	}
	if got := flipped.Records[0].Balance; got == nil || !got.Equal(bal) {
		t.Errorf("balance changed on flip: %v", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Spending, "spending"},
		{Income, "income"},
		{TransferOut, "transfer-out"},
		{TransferIn, "transfer-in"},
		{Unclassified, "unclassified"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
