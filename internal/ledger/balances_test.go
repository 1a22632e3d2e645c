package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetBalance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		debts     []DebtLine
		transfers []Transfer
		want      string
	}{
		{
			name: "no history",
			a:    "alice", b: "bob",
			want: "0",
		},
		{
			name: "shared dinner leaves half owed to the payer",
			a:    "alice", b: "bob",
			debts: []DebtLine{
				{DebtorID: "bob", CreditorID: "alice", Amount: dec("100.00")},
			},
			want: "100",
		},
		{
			name: "exact settlement clears the debt",
			a:    "alice", b: "bob",
			debts: []DebtLine{
				{DebtorID: "bob", CreditorID: "alice", Amount: dec("100.00")},
			},
			transfers: []Transfer{
				{PayerID: "bob", PayeeID: "alice", Amount: dec("100.00")},
			},
			want: "0",
		},
		{
			name: "debts across groups net together",
			a:    "alice", b: "bob",
			debts: []DebtLine{
				{DebtorID: "alice", CreditorID: "bob", Amount: dec("50.00")},
				{DebtorID: "bob", CreditorID: "alice", Amount: dec("30.00")},
			},
			want: "-20",
		},
		{
			name: "partial settlement shrinks the debt",
			a:    "alice", b: "bob",
			debts: []DebtLine{
				{DebtorID: "bob", CreditorID: "alice", Amount: dec("100.00")},
			},
			transfers: []Transfer{
				{PayerID: "bob", PayeeID: "alice", Amount: dec("40.00")},
			},
			want: "60",
		},
		{
			name: "overpayment flips the sign",
			a:    "alice", b: "bob",
			debts: []DebtLine{
				{DebtorID: "bob", CreditorID: "alice", Amount: dec("40.00")},
			},
			transfers: []Transfer{
				{PayerID: "bob", PayeeID: "alice", Amount: dec("60.00")},
			},
			want: "-20",
		},
		{
			name: "third parties are ignored",
			a:    "alice", b: "bob",
			debts: []DebtLine{
				{DebtorID: "bob", CreditorID: "alice", Amount: dec("10.00")},
				{DebtorID: "carol", CreditorID: "alice", Amount: dec("99.00")},
				{DebtorID: "bob", CreditorID: "carol", Amount: dec("99.00")},
			},
			transfers: []Transfer{
				{PayerID: "carol", PayeeID: "bob", Amount: dec("5.00")},
			},
			want: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalance(tt.a, tt.b, tt.debts, tt.transfers)
			if got.String() != tt.want {
				t.Errorf("NetBalance(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}

			// Swapping the endpoints must negate the result.
			flipped := NetBalance(tt.b, tt.a, tt.debts, tt.transfers)
			if !flipped.Equal(got.Neg()) {
				t.Errorf("NetBalance(%s, %s) = %s, want %s", tt.b, tt.a, flipped, got.Neg())
			}

			// Recomputing from the same history yields the same answer.
			again := NetBalance(tt.a, tt.b, tt.debts, tt.transfers)
			if !again.Equal(got) {
				t.Errorf("recompute gave %s, first run gave %s", again, got)
			}
		})
	}
}

func TestPortfolio(t *testing.T) {
	debts := []DebtLine{
		{DebtorID: "bob", CreditorID: "alice", Amount: dec("100.00")},
		{DebtorID: "carol", CreditorID: "alice", Amount: dec("25.50")},
		{DebtorID: "alice", CreditorID: "dave", Amount: dec("40.00")},
		{DebtorID: "carol", CreditorID: "dave", Amount: dec("7.00")}, // not alice's
	}
	transfers := []Transfer{
		{PayerID: "bob", PayeeID: "alice", Amount: dec("60.00")},
	}

	total, breakdown := Portfolio("alice", debts, transfers)

	if total.OwedToYou.String() != "65.5" {
		t.Errorf("OwedToYou = %s, want 65.5", total.OwedToYou)
	}
	if total.YouOwe.String() != "40" {
		t.Errorf("YouOwe = %s, want 40", total.YouOwe)
	}
	if total.Net.String() != "25.5" {
		t.Errorf("Net = %s, want 25.5", total.Net)
	}

	// Sorted by absolute net descending: bob (40), dave (-40), carol (25.50).
	// Equal magnitudes fall back to the counterparty id.
	wantOrder := []string{"bob", "dave", "carol"}
	if len(breakdown) != len(wantOrder) {
		t.Fatalf("got %d counterparties, want %d", len(breakdown), len(wantOrder))
	}
	for i, id := range wantOrder {
		if breakdown[i].UserID != id {
			t.Errorf("breakdown[%d] = %s, want %s", i, breakdown[i].UserID, id)
		}
	}

	// The gross columns keep both directions visible even when the net is small.
	if breakdown[0].OwedToYou.String() != "100" || breakdown[0].Net.String() != "40" {
		t.Errorf("bob position = owed %s net %s, want owed 100 net 40", breakdown[0].OwedToYou, breakdown[0].Net)
	}

	// Per-counterparty nets agree with the pairwise computation.
	for _, cp := range breakdown {
		pairwise := NetBalance("alice", cp.UserID, debts, transfers)
		if !cp.Net.Equal(pairwise) {
			t.Errorf("breakdown net for %s = %s, NetBalance = %s", cp.UserID, cp.Net, pairwise)
		}
	}
}

func TestPortfolioEmpty(t *testing.T) {
	total, breakdown := Portfolio("alice", nil, nil)
	if total.OwedToYou.Sign() != 0 || total.YouOwe.Sign() != 0 || total.Net.Sign() != 0 {
		t.Errorf("empty portfolio = %+v, want all zero", total)
	}
	if len(breakdown) != 0 {
		t.Errorf("empty breakdown has %d entries", len(breakdown))
	}
}

// A counterparty whose debts and settlements cancel still appears in the
// breakdown with a zero net, but contributes to neither portfolio column.
func TestPortfolioSettledCounterparty(t *testing.T) {
	debts := []DebtLine{
		{DebtorID: "bob", CreditorID: "alice", Amount: dec("30.00")},
	}
	transfers := []Transfer{
		{PayerID: "bob", PayeeID: "alice", Amount: dec("30.00")},
	}

	total, breakdown := Portfolio("alice", debts, transfers)
	if total.OwedToYou.Sign() != 0 || total.YouOwe.Sign() != 0 {
		t.Errorf("settled pair should not move totals: %+v", total)
	}
	if len(breakdown) != 1 || breakdown[0].UserID != "bob" || breakdown[0].Net.Sign() != 0 {
		t.Errorf("breakdown = %+v, want single zero-net entry for bob", breakdown)
	}
}
