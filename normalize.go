package reconcile

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// descriptionRules strip the format-specific noise that makes the same
// merchant render differently across exports: trailing reference numbers,
// store numbers, card-terminal prefixes, and city/state suffixes. Rules are
// applied in order to the lowercased description.
var descriptionRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\s+\d{2,}\s*$`), ""},              // trailing reference numbers
	{regexp.MustCompile(`\s+#\d+`), ""},                    // store numbers like "#0658"
	{regexp.MustCompile(`amazon\.com\*`), "amazon "},       // Amazon format variants
	{regexp.MustCompile(`amazon mktpl\*`), "amazon "},      // must run before the reference-code strip eats the "*"
	{regexp.MustCompile(`\*[a-z0-9]*\d[a-z0-9]*`), ""},     // reference codes like "*NK9M63AJ1"
	{regexp.MustCompile(`\s+amzn\.com/bill\s+wa\s*$`), ""}, // Amazon billing location
	{regexp.MustCompile(`\s+&\s+`), " and "},               // normalize ampersand
	{regexp.MustCompile(`\s+llc\s*$`), ""},                 // corporate suffixes
	{regexp.MustCompile(`\s+inc\s*$`), ""},
	{regexp.MustCompile(`\s+co\s*$`), ""},
	{regexp.MustCompile(`\s+[a-z]+\s+[a-z]{2}\s*$`), ""},   // trailing "city st"
	{regexp.MustCompile(`tst\*`), ""},                      // card terminal prefixes
	{regexp.MustCompile(`sq \*`), ""},
}

// NormalizeDescription reduces a transaction description to a stable stem
// used for duplicate matching: lowercased, stripped of reference numbers and
// location suffixes, with whitespace collapsed. It is deterministic and has
// no side effects.
func NormalizeDescription(description string) string {
	if description == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(description))
	for _, rule := range descriptionRules {
		normalized = rule.re.ReplaceAllString(normalized, rule.repl)
	}
	return strings.Join(strings.Fields(normalized), " ")
}

// Signature derives the matching key for a record: a hash of the normalized
// description, the absolute amount rounded to cents, and the account
// identifier. Two records with equal signatures and dates within the
// matcher's tolerance are candidate duplicates.
//
// The date is deliberately excluded so that posting-date vs transaction-date
// skew between formats does not break matching; the absolute amount makes
// the key survive sign-convention correction.
func Signature(r Record) string {
	data := fmt.Sprintf("%s|%s|%s",
		r.Amount.Abs().Cents().String(),
		NormalizeDescription(r.Description),
		r.Account,
	)
	sum := md5.Sum([]byte(data))
	return "sig:" + hex.EncodeToString(sum[:])[:12]
}
