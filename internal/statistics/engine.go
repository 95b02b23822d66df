package statistics

import (
	"math"
	"time"

	"tradestats/pkg/contracts/domain"
)

// Defaults for Config fields left at zero
const (
	DefaultMaxHistogramBins = 20
	DefaultTopSymbols       = 10
)

// Config bounds the distribution outputs
type Config struct {
	MaxHistogramBins int
	TopSymbols       int
}

// Engine computes the statistics bundle. It keeps no state between calls
// and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine, filling unset limits with defaults
func NewEngine(cfg Config) *Engine {
	if cfg.MaxHistogramBins <= 0 {
		cfg.MaxHistogramBins = DefaultMaxHistogramBins
	}
	if cfg.TopSymbols <= 0 {
		cfg.TopSymbols = DefaultTopSymbols
	}
	return &Engine{cfg: cfg}
}

// Compute derives every metric from trades. The input slice is not
// modified; trades are ordered by close time with ties kept in input order.
func (e *Engine) Compute(trades []domain.Trade, currency string) *domain.Statistics {
	sorted := make([]domain.Trade, len(trades))
	copy(sorted, trades)
	domain.SortByCloseTime(sorted)

	stats := &domain.Statistics{
		Currency:    currency,
		TotalTrades: len(sorted),
		Histogram:   []domain.HistogramBin{},
		Symbols:     []domain.SymbolStats{},
		EquityCurve: make([]domain.EquityPoint, 0, len(sorted)),
	}

	summarize(stats, sorted)
	equityAndDrawdown(stats, sorted)
	streaks(stats, sorted)
	timing(stats, sorted)
	pips(stats, sorted)

	stats.Histogram = histogram(sorted, e.cfg.MaxHistogramBins)
	stats.DayOfWeek, stats.HourOfDay = timeBuckets(sorted)
	stats.Symbols = topSymbols(sorted, e.cfg.TopSymbols)

	return stats
}

func summarize(stats *domain.Statistics, trades []domain.Trade) {
	var longWins, shortWins int

	for _, t := range trades {
		p := t.Profit()
		stats.NetProfit += p
		stats.TotalCommission += t.Commission
		stats.TotalSwap += t.Swap
		stats.TotalVolume += t.Volume

		switch {
		case p > 0:
			stats.WinningTrades++
			stats.GrossWin += p
			if p > stats.LargestWin {
				stats.LargestWin = p
			}
		case p < 0:
			stats.LosingTrades++
			stats.GrossLoss += p
			if p < stats.LargestLoss {
				stats.LargestLoss = p
			}
		default:
			stats.BreakevenTrades++
		}

		if t.Side == domain.TradeSideSell {
			stats.ShortTrades++
			if p > 0 {
				shortWins++
			}
		} else {
			stats.LongTrades++
			if p > 0 {
				longWins++
			}
		}
	}

	stats.WinRate = fraction(stats.WinningTrades, stats.TotalTrades)
	stats.LongWinRate = fraction(longWins, stats.LongTrades)
	stats.ShortWinRate = fraction(shortWins, stats.ShortTrades)

	if stats.WinningTrades > 0 {
		stats.AverageWin = stats.GrossWin / float64(stats.WinningTrades)
	}
	if stats.LosingTrades > 0 {
		stats.AverageLoss = stats.GrossLoss / float64(stats.LosingTrades)
	}
	if stats.TotalTrades > 0 {
		stats.AverageTrade = stats.NetProfit / float64(stats.TotalTrades)
	}

	stats.ProfitFactor = domain.NewRatio(stats.GrossWin, math.Abs(stats.GrossLoss))
	stats.RiskReward = domain.NewRatio(stats.AverageWin, math.Abs(stats.AverageLoss))
	stats.Expectancy = stats.WinRate*stats.AverageWin - (1-stats.WinRate)*math.Abs(stats.AverageLoss)
	if stats.TotalTrades == 0 {
		stats.Expectancy = 0
	}
}

// equityAndDrawdown builds the running net profit curve. The peak starts at
// the first point, so a leading loss is not a drawdown.
func equityAndDrawdown(stats *domain.Statistics, trades []domain.Trade) {
	var equity, peak float64

	for i, t := range trades {
		equity += t.Profit()
		stats.EquityCurve = append(stats.EquityCurve, domain.EquityPoint{
			Index:  i,
			Time:   t.CloseTime,
			Ticket: t.Ticket,
			Profit: t.Profit(),
			Equity: equity,
		})

		if i == 0 || equity > peak {
			peak = equity
		}
		drawdown := peak - equity
		if drawdown > stats.MaxDrawdown {
			stats.MaxDrawdown = drawdown
		}
		if peak > 0 {
			if pct := drawdown / peak * 100; pct > stats.MaxDrawdownPercent {
				stats.MaxDrawdownPercent = pct
			}
		}
	}
}

// streaks counts consecutive wins and losses; a breakeven ends both
func streaks(stats *domain.Statistics, trades []domain.Trade) {
	var wins, losses int

	for _, t := range trades {
		switch {
		case t.IsWin():
			wins++
			losses = 0
		case t.IsLoss():
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		stats.MaxWinStreak = max(stats.MaxWinStreak, wins)
		stats.MaxLoseStreak = max(stats.MaxLoseStreak, losses)
	}
}

// timing averages holding time over trades with both timestamps present and
// records the span of known close times.
func timing(stats *domain.Statistics, trades []domain.Trade) {
	var total time.Duration

	for _, t := range trades {
		if held, ok := t.HoldingTime(); ok {
			total += held
			stats.HoldingTimeSamples++
		}
		if t.Defaulted.CloseTime || t.CloseTime.IsZero() {
			continue
		}
		if stats.FirstTradeTime.IsZero() || t.CloseTime.Before(stats.FirstTradeTime) {
			stats.FirstTradeTime = t.CloseTime
		}
		if t.CloseTime.After(stats.LastTradeTime) {
			stats.LastTradeTime = t.CloseTime
		}
	}

	if stats.HoldingTimeSamples > 0 {
		stats.AverageHoldingTime = total / time.Duration(stats.HoldingTimeSamples)
	}
}

func pips(stats *domain.Statistics, trades []domain.Trade) {
	for _, t := range trades {
		if p, ok := t.Pips(); ok {
			stats.TotalPips += p
			stats.PipSamples++
		}
	}
	if stats.PipSamples > 0 {
		stats.AveragePips = stats.TotalPips / float64(stats.PipSamples)
	}
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
