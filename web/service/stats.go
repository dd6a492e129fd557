package service

import (
	"time"

	"tradedesk/database/model"
)

// DashboardStats aggregates a user's full trade list plus the slice of it
// dated today.
type DashboardStats struct {
	TotalProfit float64 `json:"totalProfit"`
	TotalLoss   float64 `json:"totalLoss"`
	TotalTrades int     `json:"totalTrades"`
	DailyProfit float64 `json:"dailyProfit"`
	DailyLoss   float64 `json:"dailyLoss"`
	DailyTrades int     `json:"dailyTrades"`
}

// UserStats is the admin view of a single account.
type UserStats struct {
	TotalProfit float64 `json:"totalProfit"`
	TotalLoss   float64 `json:"totalLoss"`
	TotalTrades int     `json:"totalTrades"`
	Withdrawals int     `json:"withdrawals"`
}

const isoDate = "2006-01-02"

// ComputeDashboardStats recomputes the dashboard metrics in one pass over the
// trade list. "Today" is matched by UTC ISO date prefix equality, which is
// known to be off around day boundaries in other timezones; the behavior is
// kept as-is deliberately.
func ComputeDashboardStats(trades []model.Trade, now time.Time) DashboardStats {
	today := now.UTC().Format(isoDate)

	stats := DashboardStats{TotalTrades: len(trades)}
	for _, t := range trades {
		stats.TotalProfit += t.Profit
		stats.TotalLoss += t.Loss

		if t.Date.UTC().Format(isoDate) == today {
			stats.DailyTrades++
			stats.DailyProfit += t.Profit
			stats.DailyLoss += t.Loss
		}
	}
	return stats
}

// ComputeUserStats aggregates whole-account totals for the admin detail page.
func ComputeUserStats(trades []model.Trade, withdrawals []model.Withdrawal) UserStats {
	stats := UserStats{
		TotalTrades: len(trades),
		Withdrawals: len(withdrawals),
	}
	for _, t := range trades {
		stats.TotalProfit += t.Profit
		stats.TotalLoss += t.Loss
	}
	return stats
}
