package sku

import "strings"

// KeyKind classifies a caller-supplied item key.
type KeyKind int

const (
	// KeyID: primary-key (UUID) lookup.
	KeyID KeyKind = iota
	// KeyStockID: stock ID (SKU) lookup.
	KeyStockID
)

// Column returns the database column the key should be matched against.
func (k KeyKind) Column() string {
	if k == KeyStockID {
		return "stock_id"
	}
	return "id"
}

// ClassifyKey decides whether key is a stock ID or a primary-key UUID by
// counting hyphens:
//
//	stock ID  BKK-ELEC-20250115-0001                  3 hyphens, 4 groups
//	UUID      a1b2c3d4-e5f6-7890-abcd-ef1234567890    4 hyphens, 5 groups
//
// Any other hyphen count falls through to a primary-key lookup. That
// default keeps malformed keys on the id path, where they miss and produce
// a normal not-found, instead of failing classification. The heuristic is
// tied to the current shapes of both formats and must be revisited if
// either changes.
func ClassifyKey(key string) KeyKind {
	if strings.Count(key, "-") == 3 {
		return KeyStockID
	}
	return KeyID
}
