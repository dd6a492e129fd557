package service

import (
	"testing"
	"time"

	"tradedesk/database/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		trades   []model.Trade
		expected DashboardStats
	}{
		{
			name:     "no trades",
			trades:   nil,
			expected: DashboardStats{},
		},
		{
			name: "totals across all trades",
			trades: []model.Trade{
				{Profit: 100, Loss: 30, Date: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
				{Profit: 50, Loss: 0, Date: time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)},
			},
			expected: DashboardStats{
				TotalProfit: 150, TotalLoss: 30, TotalTrades: 2,
			},
		},
		{
			name: "daily slice matches same UTC date only",
			trades: []model.Trade{
				{Profit: 100, Loss: 30, Date: time.Date(2024, 1, 15, 0, 0, 1, 0, time.UTC)},
				{Profit: 20, Loss: 5, Date: time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)},
				{Profit: 40, Loss: 10, Date: time.Date(2024, 1, 14, 23, 59, 59, 0, time.UTC)},
			},
			expected: DashboardStats{
				TotalProfit: 160, TotalLoss: 45, TotalTrades: 3,
				DailyProfit: 120, DailyLoss: 35, DailyTrades: 2,
			},
		},
		{
			name: "non-UTC trade date is compared by its UTC day",
			trades: []model.Trade{
				// 01:00+03 on the 15th is 22:00 UTC on the 14th.
				{Profit: 10, Date: time.Date(2024, 1, 15, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))},
			},
			expected: DashboardStats{
				TotalProfit: 10, TotalTrades: 1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeDashboardStats(tc.trades, now))
		})
	}
}

func TestComputeUserStats(t *testing.T) {
	trades := []model.Trade{
		{Profit: 100, Loss: 30},
		{Profit: 0, Loss: 20},
	}
	withdrawals := []model.Withdrawal{
		{Amount: 50}, {Amount: 25}, {Amount: 10},
	}

	stats := ComputeUserStats(trades, withdrawals)
	assert.Equal(t, UserStats{
		TotalProfit: 100,
		TotalLoss:   50,
		TotalTrades: 2,
		Withdrawals: 3,
	}, stats)
}
