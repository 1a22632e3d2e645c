// Package ledger implements the pure algorithms of the expense ledger:
// splitting an expense total across participants and aggregating recorded
// history into pairwise and portfolio balances. Everything here is a pure
// function over values fetched by the caller; persistence lives in
// internal/storage.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate/internal/models"
)

// minorUnitPlaces is the number of decimal places of the currency in use.
const minorUnitPlaces = 2

// Share is one participant's computed portion of an expense total.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// ComputeSplits divides total equally among the given participants.
//
// The division happens in integer minor units (cents): each participant
// gets floor(total/n), and the leftover cents are assigned one at a time
// in ascending participant-id order. The returned shares always sum to
// exactly total; no unit is lost or duplicated.
//
// Duplicate participant IDs are collapsed; a participant is either in the
// split or not.
func ComputeSplits(total decimal.Decimal, participantIDs []string) ([]Share, error) {
	if total.Sign() <= 0 {
		return nil, models.NewValidationError("amount must be positive, got %s", total)
	}
	if !total.Equal(total.Round(minorUnitPlaces)) {
		return nil, models.NewValidationError("amount %s has more than %d decimal places", total, minorUnitPlaces)
	}

	ids := dedupeSorted(participantIDs)
	if len(ids) == 0 {
		return nil, models.NewValidationError("participant set must not be empty")
	}

	cents := total.Shift(minorUnitPlaces).IntPart()
	n := int64(len(ids))
	base := cents / n
	remainder := cents % n

	shares := make([]Share, len(ids))
	for i, id := range ids {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = Share{
			UserID: id,
			Amount: decimal.New(c, -minorUnitPlaces),
		}
	}
	return shares, nil
}

// dedupeSorted returns the unique IDs in ascending order.
func dedupeSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
