package bet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PlayerStats aggregates a player's bets. Amount fields are exact decimal
// strings of token base units.
type PlayerStats struct {
	Player       string `json:"player"`
	TotalBets    int    `json:"totalBets"`
	SettledBets  int    `json:"settledBets"`
	PendingBets  int    `json:"pendingBets"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	TotalWagered string `json:"totalWagered"`
	TotalWon     string `json:"totalWon"`
	NetProfit    string `json:"netProfit"`
}

// ComputeStats aggregates bets for player. TotalWagered sums every bet amount,
// TotalWon sums payouts of won bets and NetProfit is TotalWon - TotalWagered.
func ComputeStats(player string, bets []*Bet) (*PlayerStats, error) {
	stats := &PlayerStats{Player: NormalizeAddress(player)}
	wagered := decimal.Zero
	won := decimal.Zero

	for _, b := range bets {
		amount, err := parseAmount(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("bet %s amount: %w", b.RequestID, err)
		}
		wagered = wagered.Add(amount)
		stats.TotalBets++

		if !b.Settled {
			stats.PendingBets++
			continue
		}
		stats.SettledBets++

		if !b.Won {
			stats.Losses++
			continue
		}
		stats.Wins++

		payout, err := parseAmount(b.Payout)
		if err != nil {
			return nil, fmt.Errorf("bet %s payout: %w", b.RequestID, err)
		}
		won = won.Add(payout)
	}

	stats.TotalWagered = wagered.String()
	stats.TotalWon = won.String()
	stats.NetProfit = won.Sub(wagered).String()
	return stats, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsInteger() {
		return decimal.Zero, fmt.Errorf("invalid amount %q: not an integer", s)
	}
	return d, nil
}
