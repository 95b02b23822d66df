package domain

import (
	"strconv"
	"time"
)

// RatioKind distinguishes a finite ratio from its two division-by-zero sentinels
type RatioKind string

const (
	RatioFinite   RatioKind = "finite"
	RatioInfinite RatioKind = "infinite"
	// RatioNone means there was nothing on either side of the division
	RatioNone RatioKind = "none"
)

// Ratio is a quotient that never carries NaN or Inf as a raw float
type Ratio struct {
	Value float64   `json:"value"`
	Kind  RatioKind `json:"kind"`
}

// NewRatio divides num by den. A positive numerator over a zero denominator is
// infinite; zero over zero is none.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		if num > 0 {
			return Ratio{Kind: RatioInfinite}
		}
		return Ratio{Kind: RatioNone}
	}
	return Ratio{Value: num / den, Kind: RatioFinite}
}

// IsInfinite reports whether the ratio is the infinite sentinel
func (r Ratio) IsInfinite() bool { return r.Kind == RatioInfinite }

// IsNone reports whether the ratio is the zero sentinel
func (r Ratio) IsNone() bool { return r.Kind == RatioNone }

// String formats the ratio with two decimals, or its sentinel symbol
func (r Ratio) String() string {
	switch r.Kind {
	case RatioInfinite:
		return "∞"
	case RatioNone:
		return "-"
	default:
		return strconv.FormatFloat(r.Value, 'f', 2, 64)
	}
}

// EquityPoint is one step of the cumulative net profit curve
type EquityPoint struct {
	Index  int       `json:"index"`
	Time   time.Time `json:"time"`
	Ticket string    `json:"ticket"`
	Profit float64   `json:"profit"`
	Equity float64   `json:"equity"`
}

// HistogramBin counts trades whose profit falls in [From, To)
type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// BucketStats aggregates trades that share a day of week or hour of day
type BucketStats struct {
	Profit  float64 `json:"profit"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// SymbolStats aggregates trades for one instrument
type SymbolStats struct {
	Symbol  string  `json:"symbol"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Profit  float64 `json:"profit"`
	WinRate float64 `json:"win_rate"`
	Volume  float64 `json:"volume"`
}

// Statistics is the bundle derived from one ordered trade collection.
// Rates are fractions in [0, 1]. Loss aggregates are zero or negative.
type Statistics struct {
	Currency string `json:"currency,omitempty"`

	TotalTrades     int `json:"total_trades"`
	WinningTrades   int `json:"winning_trades"`
	LosingTrades    int `json:"losing_trades"`
	BreakevenTrades int `json:"breakeven_trades"`
	LongTrades      int `json:"long_trades"`
	ShortTrades     int `json:"short_trades"`

	WinRate      float64 `json:"win_rate"`
	LongWinRate  float64 `json:"long_win_rate"`
	ShortWinRate float64 `json:"short_win_rate"`

	NetProfit       float64 `json:"net_profit"`
	GrossWin        float64 `json:"gross_win"`
	GrossLoss       float64 `json:"gross_loss"`
	TotalCommission float64 `json:"total_commission"`
	TotalSwap       float64 `json:"total_swap"`
	TotalVolume     float64 `json:"total_volume"`

	AverageWin   float64 `json:"average_win"`
	AverageLoss  float64 `json:"average_loss"`
	AverageTrade float64 `json:"average_trade"`
	LargestWin   float64 `json:"largest_win"`
	LargestLoss  float64 `json:"largest_loss"`

	ProfitFactor Ratio   `json:"profit_factor"`
	RiskReward   Ratio   `json:"risk_reward"`
	Expectancy   float64 `json:"expectancy"`

	MaxDrawdown        float64 `json:"max_drawdown"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
	MaxWinStreak       int     `json:"max_win_streak"`
	MaxLoseStreak      int     `json:"max_lose_streak"`

	AverageHoldingTime time.Duration `json:"average_holding_time"`
	HoldingTimeSamples int           `json:"holding_time_samples"`
	FirstTradeTime     time.Time     `json:"first_trade_time"`
	LastTradeTime      time.Time     `json:"last_trade_time"`

	TotalPips   float64 `json:"total_pips"`
	AveragePips float64 `json:"average_pips"`
	PipSamples  int     `json:"pip_samples"`

	Histogram   []HistogramBin  `json:"histogram"`
	DayOfWeek   [7]BucketStats  `json:"day_of_week"`
	HourOfDay   [24]BucketStats `json:"hour_of_day"`
	Symbols     []SymbolStats   `json:"symbols"`
	EquityCurve []EquityPoint   `json:"equity_curve"`
}
