package exporter

import (
	"strconv"
	"time"

	"tradestats/pkg/contracts/domain"
)

// SummaryRow is one labelled metric of the statistics bundle
type SummaryRow struct {
	Metric string
	Value  string
}

// Summary flattens the scalar metrics of stats into display rows. Money
// values carry the statistics currency.
func Summary(stats *domain.Statistics) []SummaryRow {
	money := func(v float64) string { return FormatMoney(v, stats.Currency) }
	count := strconv.Itoa

	return []SummaryRow{
		{"Total Trades", count(stats.TotalTrades)},
		{"Winning Trades", count(stats.WinningTrades)},
		{"Losing Trades", count(stats.LosingTrades)},
		{"Breakeven Trades", count(stats.BreakevenTrades)},
		{"Long Trades", count(stats.LongTrades)},
		{"Short Trades", count(stats.ShortTrades)},
		{"Win Rate", formatPercent(stats.WinRate)},
		{"Long Win Rate", formatPercent(stats.LongWinRate)},
		{"Short Win Rate", formatPercent(stats.ShortWinRate)},
		{"Net Profit", money(stats.NetProfit)},
		{"Gross Win", money(stats.GrossWin)},
		{"Gross Loss", money(stats.GrossLoss)},
		{"Total Commission", money(stats.TotalCommission)},
		{"Total Swap", money(stats.TotalSwap)},
		{"Total Volume", formatFloat(stats.TotalVolume)},
		{"Average Win", money(stats.AverageWin)},
		{"Average Loss", money(stats.AverageLoss)},
		{"Average Trade", money(stats.AverageTrade)},
		{"Largest Win", money(stats.LargestWin)},
		{"Largest Loss", money(stats.LargestLoss)},
		{"Profit Factor", FormatRatio(stats.ProfitFactor)},
		{"Risk/Reward", FormatRatio(stats.RiskReward)},
		{"Expectancy", money(stats.Expectancy)},
		{"Max Drawdown", money(stats.MaxDrawdown)},
		{"Max Drawdown %", formatFloat(stats.MaxDrawdownPercent) + "%"},
		{"Max Win Streak", count(stats.MaxWinStreak)},
		{"Max Lose Streak", count(stats.MaxLoseStreak)},
		{"Average Holding Time", holdingTime(stats)},
		{"First Trade", formatTime(stats.FirstTradeTime)},
		{"Last Trade", formatTime(stats.LastTradeTime)},
		{"Total Pips", formatFloat(stats.TotalPips)},
		{"Average Pips", formatFloat(stats.AveragePips)},
	}
}

func holdingTime(stats *domain.Statistics) string {
	if stats.HoldingTimeSamples == 0 {
		return "-"
	}
	return FormatDuration(stats.AverageHoldingTime)
}

// bucketRows renders the day-of-week and hour-of-day buckets
func bucketRows(stats *domain.Statistics) [][]string {
	rows := make([][]string, 0, len(stats.DayOfWeek)+len(stats.HourOfDay))
	for day, b := range stats.DayOfWeek {
		rows = append(rows, []string{"day", time.Weekday(day).String(),
			strconv.Itoa(b.Count), formatFloat(b.Profit), formatPercent(b.WinRate)})
	}
	for hour, b := range stats.HourOfDay {
		rows = append(rows, []string{"hour", strconv.Itoa(hour),
			strconv.Itoa(b.Count), formatFloat(b.Profit), formatPercent(b.WinRate)})
	}
	return rows
}

// symbolRows renders the top symbols table
func symbolRows(stats *domain.Statistics) [][]string {
	rows := make([][]string, 0, len(stats.Symbols))
	for _, s := range stats.Symbols {
		rows = append(rows, []string{s.Symbol, strconv.Itoa(s.Count),
			formatFloat(s.Profit), formatPercent(s.WinRate), formatFloat(s.Volume)})
	}
	return rows
}
