package reconcile

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// QFX/OFX statements are SGML-flavored: tags usually have no closing
// counterpart and values run to the end of the line. A full SGML parser is
// overkill for the handful of tags a statement carries, so extraction is
// regex based.
var (
	stmtTrnRE = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	ofxTagRE  = regexp.MustCompile(`(?i)<([A-Z0-9.]+)>([^<\r\n]*)`)
)

// DecodeQFX reads a QFX/OFX statement into a Batch. The FITID of each
// transaction is carried as the record's transaction id, which makes
// QFX-sourced records the most reliable side of a duplicate merge.
func DecodeQFX(r io.Reader, source, institution string) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("%s: cannot read statement: %w", source, err)
	}
	text := string(data)
	if !strings.Contains(text, "OFXHEADER") && !strings.Contains(strings.ToUpper(text), "<OFX>") {
		return Batch{}, fmt.Errorf("%s: not an OFX/QFX statement", source)
	}

	account := trimAccountID(ofxValue(text, "ACCTID"))

	b := Batch{Source: source}
	for i, m := range stmtTrnRE.FindAllStringSubmatch(text, -1) {
		block := m[1]

		rawDate := ofxValue(block, "DTPOSTED")
		if len(rawDate) < 8 {
			return Batch{}, fmt.Errorf("%s: transaction %d: missing or short DTPOSTED", source, i)
		}
		posted, err := time.Parse("20060102", rawDate[:8])
		if err != nil {
			return Batch{}, fmt.Errorf("%s: transaction %d: invalid DTPOSTED %q: %w", source, i, rawDate, err)
		}

		amount, err := ParseAmount(ofxValue(block, "TRNAMT"))
		if err != nil {
			return Batch{}, fmt.Errorf("%s: transaction %d: invalid TRNAMT: %w", source, i, err)
		}

		description := ofxValue(block, "MEMO")
		if description == "" {
			description = ofxValue(block, "NAME")
		}
		if description == "" {
			description = "Unknown transaction"
		}

		b.Records = append(b.Records, Record{
			Date:          NewDate(posted.Date()),
			Amount:        amount,
			Description:   description,
			Account:       account,
			Institution:   institution,
			TransactionID: ofxValue(block, "FITID"),
		})
	}
	return b, nil
}

// ofxValue returns the value of the first occurrence of the given tag.
func ofxValue(text, tag string) string {
	for _, m := range ofxTagRE.FindAllStringSubmatch(text, -1) {
		if strings.EqualFold(m[1], tag) {
			return strings.TrimSpace(m[2])
		}
	}
	return ""
}

// trimAccountID shortens a full account number to its last four digits, the
// form account directories are keyed by.
func trimAccountID(id string) string {
	if id == "" {
		return "unknown"
	}
	digits := strings.ReplaceAll(id, "-", "")
	if len(digits) > 4 && strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
		return digits[len(digits)-4:]
	}
	return id
}
