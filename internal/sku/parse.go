package sku

import "strings"

// ParsedSKU is the result of splitting a stock ID into its components.
type ParsedSKU struct {
	BranchCode   string
	CategoryCode string
	Date         string // YYYYMMDD, length-checked only
	Sequence     string // 4 digits, length-checked only
}

// Parse splits a stock ID into its four parts. It returns nil (not an
// error) unless the string splits into exactly 4 non-empty hyphen-delimited
// parts with an 8-character date and a 4-character sequence.
//
// The check is deliberately lenient: "99999999" is accepted as a date.
// Callers that need real date validation must layer it on top.
func Parse(s string) *ParsedSKU {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return nil
	}

	branchCode, categoryCode, date, sequence := parts[0], parts[1], parts[2], parts[3]
	if branchCode == "" || categoryCode == "" || len(date) != 8 || len(sequence) != 4 {
		return nil
	}

	return &ParsedSKU{
		BranchCode:   branchCode,
		CategoryCode: categoryCode,
		Date:         date,
		Sequence:     sequence,
	}
}
