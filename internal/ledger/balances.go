package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DebtLine is one outstanding (unsettled) split joined with its expense's
// payer: DebtorID owes CreditorID the amount. Splits where the debtor is
// the payer themselves must never be passed here; a payer's own share is
// not a debt.
type DebtLine struct {
	DebtorID   string
	CreditorID string
	Amount     decimal.Decimal
}

// Transfer is a recorded settlement payment from PayerID to PayeeID.
type Transfer struct {
	PayerID string
	PayeeID string
	Amount  decimal.Decimal
}

// PortfolioBalance is a user's aggregate position across all counterparties.
// OwedToYou and YouOwe are reported separately and never netted against
// each other; Net is their difference, shown as its own figure.
type PortfolioBalance struct {
	OwedToYou decimal.Decimal
	YouOwe    decimal.Decimal
	Net       decimal.Decimal
}

// CounterpartyBalance is a user's position against one other user.
// OwedToYou and YouOwe are the gross outstanding split totals in each
// direction; Net additionally folds in settlements, so it equals
// NetBalance(user, counterparty).
type CounterpartyBalance struct {
	UserID    string
	OwedToYou decimal.Decimal
	YouOwe    decimal.Decimal
	Net       decimal.Decimal
}

// NetBalance computes the signed balance between users a and b from the
// full history of outstanding debts and settlements involving the pair.
// A positive result means b owes a; NetBalance(a, b) == -NetBalance(b, a).
//
// Settlements are plain signed offsets against the net, not tied to any
// particular debt line: a payment b→a reduces what b owes a, even past
// zero (prepayment flips the sign, which is valid).
func NetBalance(a, b string, debts []DebtLine, transfers []Transfer) decimal.Decimal {
	net := decimal.Zero
	for _, d := range debts {
		switch {
		case d.DebtorID == b && d.CreditorID == a:
			net = net.Add(d.Amount)
		case d.DebtorID == a && d.CreditorID == b:
			net = net.Sub(d.Amount)
		}
	}
	for _, t := range transfers {
		switch {
		case t.PayerID == b && t.PayeeID == a:
			net = net.Sub(t.Amount)
		case t.PayerID == a && t.PayeeID == b:
			net = net.Add(t.Amount)
		}
	}
	return net
}

// Portfolio aggregates every debt and settlement involving userID into the
// user's portfolio totals plus a per-counterparty breakdown.
//
// Counterparties are partitioned by the sign of their net balance with the
// user: positive nets sum into OwedToYou, the absolute values of negative
// nets sum into YouOwe. The breakdown is sorted by absolute net descending
// (counterparty ID as tie-break) so the result is deterministic.
func Portfolio(userID string, debts []DebtLine, transfers []Transfer) (PortfolioBalance, []CounterpartyBalance) {
	type position struct {
		owedToYou decimal.Decimal
		youOwe    decimal.Decimal
		net       decimal.Decimal
	}
	positions := make(map[string]*position)
	at := func(id string) *position {
		p, ok := positions[id]
		if !ok {
			p = &position{
				owedToYou: decimal.Zero,
				youOwe:    decimal.Zero,
				net:       decimal.Zero,
			}
			positions[id] = p
		}
		return p
	}

	for _, d := range debts {
		switch {
		case d.CreditorID == userID && d.DebtorID != userID:
			p := at(d.DebtorID)
			p.owedToYou = p.owedToYou.Add(d.Amount)
			p.net = p.net.Add(d.Amount)
		case d.DebtorID == userID && d.CreditorID != userID:
			p := at(d.CreditorID)
			p.youOwe = p.youOwe.Add(d.Amount)
			p.net = p.net.Sub(d.Amount)
		}
	}
	// A payment the user receives reduces what that counterparty owes;
	// a payment the user makes reduces what the user owes them.
	for _, t := range transfers {
		switch {
		case t.PayeeID == userID && t.PayerID != userID:
			p := at(t.PayerID)
			p.net = p.net.Sub(t.Amount)
		case t.PayerID == userID && t.PayeeID != userID:
			p := at(t.PayeeID)
			p.net = p.net.Add(t.Amount)
		}
	}

	total := PortfolioBalance{
		OwedToYou: decimal.Zero,
		YouOwe:    decimal.Zero,
		Net:       decimal.Zero,
	}
	breakdown := make([]CounterpartyBalance, 0, len(positions))
	for id, p := range positions {
		switch p.net.Sign() {
		case 1:
			total.OwedToYou = total.OwedToYou.Add(p.net)
		case -1:
			total.YouOwe = total.YouOwe.Add(p.net.Neg())
		}
		breakdown = append(breakdown, CounterpartyBalance{
			UserID:    id,
			OwedToYou: p.owedToYou,
			YouOwe:    p.youOwe,
			Net:       p.net,
		})
	}
	total.Net = total.OwedToYou.Sub(total.YouOwe)

	sort.Slice(breakdown, func(i, j int) bool {
		ai, aj := breakdown[i].Net.Abs(), breakdown[j].Net.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return breakdown[i].UserID < breakdown[j].UserID
	})
	return total, breakdown
}
