package sku

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotExist is returned by Store implementations when a looked-up record
// does not exist.
var ErrNotExist = errors.New("record does not exist")

// ErrSequenceOverflow is returned when a branch+category pair exceeds 9999
// items in a single day. The sequence field is fixed at 4 digits; widening
// it would break every consumer of the stock ID format, so generation is
// refused instead.
var ErrSequenceOverflow = errors.New("daily stock ID sequence exhausted")

// NotFoundError: the given branch or category ID does not resolve to a code.
type NotFoundError struct {
	Entity string // "branch" or "category"
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// Store is the narrow view of the data store the generator needs. Lookups
// return ErrNotExist when no matching row exists.
type Store interface {
	BranchCode(ctx context.Context, branchID uint) (string, error)
	CategoryCode(ctx context.Context, categoryID uint) (string, error)
	CountItemsCreatedBetween(ctx context.Context, branchID, categoryID uint, start, end time.Time) (int64, error)
	StockIDExists(ctx context.Context, stockID string) (bool, error)
}

// Generator produces stock IDs (SKUs) of the form
// {BRANCH_CODE}-{CATEGORY_CODE}-{YYYYMMDD}-{SEQUENCE},
// e.g. BKK-ELEC-20250115-0001.
type Generator struct {
	store Store
	now   func() time.Time
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store, now: time.Now}
}

// Generate builds the next stock ID for the given branch and category.
//
// The sequence part is (number of items already created today for this
// branch+category) + 1, zero-padded to 4 digits. Generate performs no
// writes: two concurrent calls can observe the same count and return the
// same stock ID. The caller must rely on the unique index on stock_id and
// retry on a duplicate-key violation.
func (g *Generator) Generate(ctx context.Context, branchID, categoryID uint) (string, error) {
	branchCode, err := g.store.BranchCode(ctx, branchID)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return "", &NotFoundError{Entity: "branch", ID: branchID}
		}
		return "", err
	}

	categoryCode, err := g.store.CategoryCode(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return "", &NotFoundError{Entity: "category", ID: categoryID}
		}
		return "", err
	}

	now := g.now()
	datePart := now.Format("20060102")

	// Half-open local-time window [today 00:00, tomorrow 00:00).
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	count, err := g.store.CountItemsCreatedBetween(ctx, branchID, categoryID, startOfDay, endOfDay)
	if err != nil {
		return "", err
	}

	sequence := count + 1
	if sequence > 9999 {
		return "", ErrSequenceOverflow
	}

	return fmt.Sprintf("%s-%s-%s-%04d", branchCode, categoryCode, datePart, sequence), nil
}

// IsDuplicate reports whether the given stock ID is already assigned to an
// item.
func (g *Generator) IsDuplicate(ctx context.Context, stockID string) (bool, error) {
	return g.store.StockIDExists(ctx, stockID)
}
