package statistics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradestats/pkg/contracts/domain"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // Monday

// trade builds a closed trade n hours after base
func trade(n int, symbol string, side domain.TradeSide, profit float64) domain.Trade {
	return domain.NewTrade(domain.TradeInput{
		Ticket:      fmt.Sprintf("T%d", n),
		Symbol:      symbol,
		Side:        side,
		Volume:      0.1,
		OpenPrice:   1.1,
		ClosePrice:  1.1,
		OpenTime:    base.Add(time.Duration(n)*time.Hour - 30*time.Minute),
		CloseTime:   base.Add(time.Duration(n) * time.Hour),
		GrossProfit: profit,
	})
}

func profits(ps ...float64) []domain.Trade {
	out := make([]domain.Trade, len(ps))
	for i, p := range ps {
		out[i] = trade(i, "EURUSD", domain.TradeSideBuy, p)
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	stats := NewEngine(Config{}).Compute(nil, "USD")

	assert.Equal(t, "USD", stats.Currency)
	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.WinRate)
	assert.Zero(t, stats.Expectancy)
	assert.True(t, stats.ProfitFactor.IsNone())
	assert.True(t, stats.RiskReward.IsNone())
	assert.Empty(t, stats.EquityCurve)
	assert.NotNil(t, stats.Histogram)
	assert.NotNil(t, stats.Symbols)
	assert.True(t, stats.FirstTradeTime.IsZero())
}

func TestCompute_Summary(t *testing.T) {
	trades := []domain.Trade{
		trade(0, "EURUSD", domain.TradeSideBuy, 100),
		trade(1, "EURUSD", domain.TradeSideSell, -50),
		trade(2, "GBPUSD", domain.TradeSideBuy, 0),
		trade(3, "GBPUSD", domain.TradeSideSell, 30),
		trade(4, "USDJPY", domain.TradeSideBuy, -20),
	}

	stats := NewEngine(Config{}).Compute(trades, "EUR")

	assert.Equal(t, 5, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 2, stats.LosingTrades)
	assert.Equal(t, 1, stats.BreakevenTrades)
	assert.Equal(t, 3, stats.LongTrades)
	assert.Equal(t, 2, stats.ShortTrades)

	assert.InDelta(t, 0.4, stats.WinRate, 1e-12)
	assert.InDelta(t, 1.0/3.0, stats.LongWinRate, 1e-12)
	assert.InDelta(t, 0.5, stats.ShortWinRate, 1e-12)

	assert.InDelta(t, 60, stats.NetProfit, 1e-9)
	assert.InDelta(t, 130, stats.GrossWin, 1e-9)
	assert.InDelta(t, -70, stats.GrossLoss, 1e-9)
	assert.InDelta(t, 65, stats.AverageWin, 1e-9)
	assert.InDelta(t, -35, stats.AverageLoss, 1e-9)
	assert.InDelta(t, 12, stats.AverageTrade, 1e-9)
	assert.InDelta(t, 100, stats.LargestWin, 1e-9)
	assert.InDelta(t, -50, stats.LargestLoss, 1e-9)
	assert.InDelta(t, 0.5, stats.TotalVolume, 1e-9)

	require.Equal(t, domain.RatioFinite, stats.ProfitFactor.Kind)
	assert.InDelta(t, 130.0/70.0, stats.ProfitFactor.Value, 1e-12)
	require.Equal(t, domain.RatioFinite, stats.RiskReward.Kind)
	assert.InDelta(t, 65.0/35.0, stats.RiskReward.Value, 1e-12)
	assert.InDelta(t, 0.4*65-0.6*35, stats.Expectancy, 1e-9)

	assert.Equal(t, 30*time.Minute, stats.AverageHoldingTime)
	assert.Equal(t, 5, stats.HoldingTimeSamples)
	assert.Equal(t, base, stats.FirstTradeTime)
	assert.Equal(t, base.Add(4*time.Hour), stats.LastTradeTime)
}

func TestCompute_CostsFlowIntoNetProfit(t *testing.T) {
	tr := domain.NewTrade(domain.TradeInput{
		Ticket: "1", Symbol: "EURUSD", Volume: 1,
		GrossProfit: 10, Commission: -2.5, Swap: -0.5,
	})
	require.InDelta(t, 7.0, tr.NetProfit, 1e-12)

	stats := NewEngine(Config{}).Compute([]domain.Trade{tr}, "")
	assert.InDelta(t, 7.0, stats.NetProfit, 1e-12)
	assert.InDelta(t, -2.5, stats.TotalCommission, 1e-12)
	assert.InDelta(t, -0.5, stats.TotalSwap, 1e-12)
}

func TestCompute_RatioSentinels(t *testing.T) {
	tests := []struct {
		name string
		ps   []float64
		pf   domain.RatioKind
		rr   domain.RatioKind
	}{
		{"wins only", []float64{10, 20}, domain.RatioInfinite, domain.RatioInfinite},
		{"losses only", []float64{-10, -20}, domain.RatioFinite, domain.RatioFinite},
		{"breakeven only", []float64{0, 0}, domain.RatioNone, domain.RatioNone},
		{"mixed", []float64{10, -5}, domain.RatioFinite, domain.RatioFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewEngine(Config{}).Compute(profits(tt.ps...), "")
			assert.Equal(t, tt.pf, stats.ProfitFactor.Kind)
			assert.Equal(t, tt.rr, stats.RiskReward.Kind)
		})
	}

	stats := NewEngine(Config{}).Compute(profits(10, 20), "")
	assert.Equal(t, "∞", stats.ProfitFactor.String())
	stats = NewEngine(Config{}).Compute(profits(0), "")
	assert.Equal(t, "-", stats.ProfitFactor.String())
	stats = NewEngine(Config{}).Compute(profits(-10), "")
	assert.Equal(t, "0.00", stats.ProfitFactor.String())
}

func TestCompute_SortsByCloseTimeStably(t *testing.T) {
	later := trade(5, "EURUSD", domain.TradeSideBuy, 1)
	first := trade(1, "EURUSD", domain.TradeSideBuy, 2)
	tieA := trade(3, "AAA", domain.TradeSideBuy, 3)
	tieB := trade(3, "BBB", domain.TradeSideBuy, 4)
	input := []domain.Trade{later, tieA, first, tieB}

	stats := NewEngine(Config{}).Compute(input, "")

	tickets := make([]string, 0, len(stats.EquityCurve))
	for _, p := range stats.EquityCurve {
		tickets = append(tickets, p.Ticket)
	}
	assert.Equal(t, []string{"T1", "T3", "T3", "T5"}, tickets)
	assert.InDelta(t, 3, stats.EquityCurve[1].Profit, 1e-12, "tie keeps input order")
	assert.InDelta(t, 4, stats.EquityCurve[2].Profit, 1e-12)
	assert.Equal(t, "T5", input[0].Ticket, "input is not reordered")
}

func TestCompute_EquityCurve(t *testing.T) {
	ps := []float64{10, -4, 7.5, 0, -20, 3}
	stats := NewEngine(Config{}).Compute(profits(ps...), "")

	require.Len(t, stats.EquityCurve, len(ps))
	var sum float64
	for i, p := range stats.EquityCurve {
		sum += ps[i]
		assert.Equal(t, i, p.Index)
		assert.InDelta(t, sum, p.Equity, 1e-9)
		assert.Equal(t, base.Add(time.Duration(i)*time.Hour), p.Time)
	}
	assert.InDelta(t, stats.NetProfit, stats.EquityCurve[len(ps)-1].Equity, 1e-9)
}

func TestCompute_Drawdown(t *testing.T) {
	tests := []struct {
		name  string
		ps    []float64
		dd    float64
		ddPct float64
	}{
		{"non-decreasing", []float64{5, 0, 3, 0}, 0, 0},
		{"single dip", []float64{100, -25, 10}, 25, 25},
		{"deepest of two", []float64{100, -10, 50, -60, 5}, 60, 60.0 / 140 * 100},
		{"leading loss is not a drawdown", []float64{-10, 5}, 0, 0},
		{"drawdown below zero peak", []float64{-10, -5}, 5, 0},
		{"single trade", []float64{-40}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewEngine(Config{}).Compute(profits(tt.ps...), "")
			assert.InDelta(t, tt.dd, stats.MaxDrawdown, 1e-9)
			assert.InDelta(t, tt.ddPct, stats.MaxDrawdownPercent, 1e-9)
			assert.GreaterOrEqual(t, stats.MaxDrawdown, 0.0)
		})
	}
}

func TestCompute_Streaks(t *testing.T) {
	tests := []struct {
		name string
		ps   []float64
		win  int
		loss int
	}{
		{"alternating", []float64{1, -1, 1, -1}, 1, 1},
		{"runs", []float64{1, 2, 3, -1, -2, 4}, 3, 2},
		{"breakeven resets win run", []float64{1, 1, 0, 1}, 2, 0},
		{"breakeven resets loss run", []float64{-1, -1, 0, -1, -1, -1}, 0, 3},
		{"all breakeven", []float64{0, 0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewEngine(Config{}).Compute(profits(tt.ps...), "")
			assert.Equal(t, tt.win, stats.MaxWinStreak)
			assert.Equal(t, tt.loss, stats.MaxLoseStreak)
		})
	}
}

func TestCompute_HoldingTimeSkipsDefaultedTimes(t *testing.T) {
	known := trade(0, "EURUSD", domain.TradeSideBuy, 1)
	unknown := domain.NewTrade(domain.TradeInput{
		Ticket: "X", Symbol: "EURUSD", Volume: 0.1, GrossProfit: 1,
		OpenTime: base, CloseTime: base.Add(48 * time.Hour),
		Defaulted: domain.DefaultedFields{OpenTime: true},
	})

	stats := NewEngine(Config{}).Compute([]domain.Trade{known, unknown}, "")
	assert.Equal(t, 1, stats.HoldingTimeSamples)
	assert.Equal(t, 30*time.Minute, stats.AverageHoldingTime)
}

func TestCompute_Pips(t *testing.T) {
	buy := domain.NewTrade(domain.TradeInput{
		Ticket: "1", Symbol: "EURUSD", Side: domain.TradeSideBuy, Volume: 1,
		OpenPrice: 1.1000, ClosePrice: 1.1050, CloseTime: base,
	})
	sell := domain.NewTrade(domain.TradeInput{
		Ticket: "2", Symbol: "USDJPY", Side: domain.TradeSideSell, Volume: 1,
		OpenPrice: 150.00, ClosePrice: 149.50, CloseTime: base.Add(time.Hour),
	})
	noPrices := domain.NewTrade(domain.TradeInput{
		Ticket: "3", Symbol: "GBPUSD", Volume: 1, CloseTime: base.Add(2 * time.Hour),
		Defaulted: domain.DefaultedFields{OpenPrice: true, ClosePrice: true},
	})

	stats := NewEngine(Config{}).Compute([]domain.Trade{buy, sell, noPrices}, "")
	assert.Equal(t, 2, stats.PipSamples)
	assert.InDelta(t, 100, stats.TotalPips, 1e-6)
	assert.InDelta(t, 50, stats.AveragePips, 1e-6)
}

func TestHistogram(t *testing.T) {
	t.Run("bin count follows sqrt", func(t *testing.T) {
		ps := make([]float64, 10)
		for i := range ps {
			ps[i] = float64(i)
		}
		bins := histogram(profits(ps...), DefaultMaxHistogramBins)

		require.Len(t, bins, 4)
		assert.Equal(t, 0.0, bins[0].From)
		assert.Equal(t, 9.0, bins[3].To)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, 10, total)
		assert.Equal(t, 3, bins[3].Count, "values 7, 8 and the max 9 fall in the last bin")
	})

	t.Run("capped at max bins", func(t *testing.T) {
		ps := make([]float64, 900)
		for i := range ps {
			ps[i] = float64(i % 37)
		}
		bins := histogram(profits(ps...), DefaultMaxHistogramBins)
		assert.Len(t, bins, DefaultMaxHistogramBins)
	})

	t.Run("identical values use one bin", func(t *testing.T) {
		bins := histogram(profits(5, 5, 5), DefaultMaxHistogramBins)
		assert.Equal(t, []domain.HistogramBin{{From: 5, To: 5, Count: 3}}, bins)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, histogram(nil, DefaultMaxHistogramBins))
	})
}

func TestTimeBuckets(t *testing.T) {
	trades := []domain.Trade{
		trade(0, "EURUSD", domain.TradeSideBuy, 10), // Monday 09:00
		trade(1, "EURUSD", domain.TradeSideBuy, -4), // Monday 10:00
		trade(24, "EURUSD", domain.TradeSideBuy, 6), // Tuesday 09:00
		trade(25, "EURUSD", domain.TradeSideBuy, 0), // Tuesday 10:00
	}
	defaulted := domain.NewTrade(domain.TradeInput{
		Ticket: "D", Symbol: "EURUSD", Volume: 1, GrossProfit: 99,
		CloseTime: base, Defaulted: domain.DefaultedFields{CloseTime: true},
	})
	trades = append(trades, defaulted)

	days, hours := timeBuckets(trades)

	assert.Equal(t, domain.BucketStats{Profit: 6, Count: 2, Wins: 1, WinRate: 0.5}, days[time.Monday])
	assert.Equal(t, domain.BucketStats{Profit: 6, Count: 2, Wins: 1, WinRate: 0.5}, days[time.Tuesday])
	assert.Equal(t, domain.BucketStats{}, days[time.Sunday])
	assert.Equal(t, domain.BucketStats{Profit: 16, Count: 2, Wins: 2, WinRate: 1}, hours[9])
	assert.Equal(t, domain.BucketStats{Profit: -4, Count: 2, Wins: 0, WinRate: 0}, hours[10])
}

func TestTimeBuckets_UsesRecordedZone(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	tr := domain.NewTrade(domain.TradeInput{
		Ticket: "1", Symbol: "EURUSD", Volume: 1, GrossProfit: 1,
		CloseTime: time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC).In(zone), // Monday 02:30 local
	})

	days, hours := timeBuckets([]domain.Trade{tr})
	assert.Equal(t, 1, days[time.Monday].Count)
	assert.Equal(t, 1, hours[2].Count)
}

func TestTopSymbols(t *testing.T) {
	var trades []domain.Trade
	n := 0
	add := func(symbol string, count int, profit float64) {
		for i := 0; i < count; i++ {
			trades = append(trades, trade(n, symbol, domain.TradeSideBuy, profit))
			n++
		}
	}
	add("EURUSD", 5, 1)
	add("GBPUSD", 3, -1)
	add("AUDUSD", 3, 2)
	for i := 0; i < 10; i++ {
		add(fmt.Sprintf("SYM%03d", i), 1, 0)
	}

	top := topSymbols(trades, DefaultTopSymbols)

	require.Len(t, top, DefaultTopSymbols)
	assert.Equal(t, "EURUSD", top[0].Symbol)
	assert.Equal(t, "AUDUSD", top[1].Symbol, "ties are ordered by symbol")
	assert.Equal(t, "GBPUSD", top[2].Symbol)
	assert.Equal(t, "SYM000", top[3].Symbol)
	assert.Equal(t, "SYM006", top[9].Symbol)

	assert.Equal(t, 5, top[0].Count)
	assert.Equal(t, 5, top[0].Wins)
	assert.InDelta(t, 5, top[0].Profit, 1e-9)
	assert.InDelta(t, 0.5, top[0].Volume, 1e-9)
	assert.Equal(t, 1.0, top[0].WinRate)
	assert.Equal(t, 0.0, top[2].WinRate)
}

func TestNewEngine_Limits(t *testing.T) {
	e := NewEngine(Config{MaxHistogramBins: 2, TopSymbols: 1})
	stats := e.Compute([]domain.Trade{
		trade(0, "EURUSD", domain.TradeSideBuy, 1),
		trade(1, "GBPUSD", domain.TradeSideBuy, 2),
		trade(2, "GBPUSD", domain.TradeSideBuy, 3),
		trade(3, "EURUSD", domain.TradeSideBuy, 4),
		trade(4, "USDCAD", domain.TradeSideBuy, 5),
	}, "")

	assert.Len(t, stats.Histogram, 2)
	require.Len(t, stats.Symbols, 1)
	assert.Equal(t, "EURUSD", stats.Symbols[0].Symbol)
}
