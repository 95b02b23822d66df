package domain

import (
	"sort"
	"strings"
	"time"
)

// MinVolume is the lot size used when a volume cell cannot be parsed
const MinVolume = 0.01

// UnknownSymbol marks a trade whose instrument could not be recovered
const UnknownSymbol = "UNKNOWN"

// TradeSide represents the side of a trade
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// DefaultedFields records which Trade fields fell back to a default value
// because the source cell was missing or unparseable.
type DefaultedFields struct {
	Ticket     bool `json:"ticket,omitempty"`
	Volume     bool `json:"volume,omitempty"`
	OpenPrice  bool `json:"open_price,omitempty"`
	ClosePrice bool `json:"close_price,omitempty"`
	OpenTime   bool `json:"open_time,omitempty"`
	CloseTime  bool `json:"close_time,omitempty"`
	Profit     bool `json:"profit,omitempty"`
}

// Any reports whether at least one field was defaulted
func (d DefaultedFields) Any() bool {
	return d != DefaultedFields{}
}

// Trade represents one closed position recovered from a broker statement.
// Values are set once by NewTrade and never modified afterwards.
type Trade struct {
	Ticket      string          `json:"ticket" validate:"required"`
	Symbol      string          `json:"symbol" validate:"required,ne=UNKNOWN"`
	Side        TradeSide       `json:"side" validate:"required,oneof=buy sell"`
	Volume      float64         `json:"volume" validate:"gt=0"`
	OpenPrice   float64         `json:"open_price"`
	ClosePrice  float64         `json:"close_price"`
	OpenTime    time.Time       `json:"open_time"`
	CloseTime   time.Time       `json:"close_time"`
	StopLoss    *float64        `json:"stop_loss,omitempty"`
	TakeProfit  *float64        `json:"take_profit,omitempty"`
	GrossProfit float64         `json:"gross_profit"`
	Commission  float64         `json:"commission"`
	Swap        float64         `json:"swap"`
	NetProfit   float64         `json:"net_profit"`
	Defaulted   DefaultedFields `json:"defaulted"`
}

// TradeInput carries the raw normalized values used to construct a Trade
type TradeInput struct {
	Ticket      string
	Symbol      string
	Side        TradeSide
	Volume      float64
	OpenPrice   float64
	ClosePrice  float64
	OpenTime    time.Time
	CloseTime   time.Time
	StopLoss    *float64
	TakeProfit  *float64
	GrossProfit float64
	Commission  float64
	Swap        float64
	Defaulted   DefaultedFields
}

// NewTrade builds a Trade and derives its net profit
func NewTrade(in TradeInput) Trade {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	side := in.Side
	if side != TradeSideSell {
		side = TradeSideBuy
	}
	return Trade{
		Ticket:      in.Ticket,
		Symbol:      symbol,
		Side:        side,
		Volume:      in.Volume,
		OpenPrice:   in.OpenPrice,
		ClosePrice:  in.ClosePrice,
		OpenTime:    in.OpenTime,
		CloseTime:   in.CloseTime,
		StopLoss:    copyFloat(in.StopLoss),
		TakeProfit:  copyFloat(in.TakeProfit),
		GrossProfit: in.GrossProfit,
		Commission:  in.Commission,
		Swap:        in.Swap,
		NetProfit:   in.GrossProfit + in.Commission + in.Swap,
		Defaulted:   in.Defaulted,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Profit returns the value every statistic is computed from
func (t Trade) Profit() float64 {
	return t.NetProfit
}

// IsWin reports whether the trade closed with a strictly positive profit
func (t Trade) IsWin() bool {
	return t.Profit() > 0
}

// IsLoss reports whether the trade closed with a strictly negative profit
func (t Trade) IsLoss() bool {
	return t.Profit() < 0
}

// HoldingTime returns closeTime minus openTime. The second value is false
// when either timestamp was not present in the source row.
func (t Trade) HoldingTime() (time.Duration, bool) {
	if t.Defaulted.OpenTime || t.Defaulted.CloseTime {
		return 0, false
	}
	if t.OpenTime.IsZero() || t.CloseTime.IsZero() {
		return 0, false
	}
	return t.CloseTime.Sub(t.OpenTime), true
}

// Pips returns the price movement in the trade's favour expressed in pips.
// A price that was missing in the source makes the value unavailable; a
// genuine zero price read from the file does not.
func (t Trade) Pips() (float64, bool) {
	if t.Defaulted.OpenPrice || t.Defaulted.ClosePrice {
		return 0, false
	}
	move := t.ClosePrice - t.OpenPrice
	if t.Side == TradeSideSell {
		move = -move
	}
	return move / PipSize(t.Symbol), true
}

// SortByCloseTime orders trades by close time in place. Trades closing at
// the same instant keep their relative order.
func SortByCloseTime(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].CloseTime.Before(trades[j].CloseTime)
	})
}

// PipSize returns the minimum quoted price increment for a symbol
func PipSize(symbol string) float64 {
	s := strings.ToUpper(symbol)
	switch {
	case strings.HasPrefix(s, "XAU"):
		return 0.01
	case len(s) >= 6 && isLetters(s[:6]) && s[3:6] == "JPY":
		return 0.01
	case len(s) >= 6 && isLetters(s[:6]):
		return 0.0001
	default:
		return 1
	}
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
