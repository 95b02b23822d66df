package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTrade(t *testing.T) {
	sl := 1.09
	trade := NewTrade(TradeInput{
		Ticket:      "1",
		Symbol:      " eurusd ",
		Side:        "",
		Volume:      0.1,
		StopLoss:    &sl,
		GrossProfit: 50,
		Commission:  -0.7,
		Swap:        -0.3,
	})

	assert.Equal(t, "EURUSD", trade.Symbol)
	assert.Equal(t, TradeSideBuy, trade.Side)
	assert.InDelta(t, 49.0, trade.NetProfit, 1e-9)
	assert.Equal(t, trade.NetProfit, trade.Profit())

	sl = 2
	assert.Equal(t, 1.09, *trade.StopLoss, "input pointer is copied")
	assert.Nil(t, trade.TakeProfit)
}

func TestTrade_WinLoss(t *testing.T) {
	tests := []struct {
		profit float64
		win    bool
		loss   bool
	}{
		{profit: 10, win: true},
		{profit: -10, loss: true},
		{profit: 0},
	}

	for _, tt := range tests {
		trade := NewTrade(TradeInput{GrossProfit: tt.profit})
		assert.Equal(t, tt.win, trade.IsWin(), "profit %v", tt.profit)
		assert.Equal(t, tt.loss, trade.IsLoss(), "profit %v", tt.profit)
	}
}

func TestTrade_HoldingTime(t *testing.T) {
	open := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     TradeInput
		want   time.Duration
		wantOK bool
	}{
		{
			name:   "both times present",
			in:     TradeInput{OpenTime: open, CloseTime: open.Add(90 * time.Minute)},
			want:   90 * time.Minute,
			wantOK: true,
		},
		{
			name: "defaulted close time",
			in: TradeInput{OpenTime: open, CloseTime: open.Add(time.Hour),
				Defaulted: DefaultedFields{CloseTime: true}},
		},
		{
			name: "zero open time",
			in:   TradeInput{CloseTime: open},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewTrade(tt.in).HoldingTime()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrade_Pips(t *testing.T) {
	tests := []struct {
		name   string
		in     TradeInput
		want   float64
		wantOK bool
	}{
		{
			name:   "buy major",
			in:     TradeInput{Symbol: "EURUSD", Side: TradeSideBuy, OpenPrice: 1.1000, ClosePrice: 1.1050},
			want:   50,
			wantOK: true,
		},
		{
			name:   "sell yen cross",
			in:     TradeInput{Symbol: "USDJPY", Side: TradeSideSell, OpenPrice: 150.00, ClosePrice: 150.25},
			want:   -25,
			wantOK: true,
		},
		{
			name:   "gold",
			in:     TradeInput{Symbol: "XAUUSD", Side: TradeSideBuy, OpenPrice: 2000, ClosePrice: 2001.5},
			want:   150,
			wantOK: true,
		},
		{
			name:   "genuine zero price",
			in:     TradeInput{Symbol: "US30", Side: TradeSideBuy, OpenPrice: 0, ClosePrice: 3},
			want:   3,
			wantOK: true,
		},
		{
			name: "defaulted price",
			in: TradeInput{Symbol: "EURUSD", OpenPrice: 1.1, ClosePrice: 1.2,
				Defaulted: DefaultedFields{OpenPrice: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewTrade(tt.in).Pips()
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestSortByCloseTime(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closing := func(ticket string, hours int) Trade {
		return NewTrade(TradeInput{Ticket: ticket, Symbol: "EURUSD", CloseTime: base.Add(time.Duration(hours) * time.Hour)})
	}

	trades := []Trade{closing("c", 3), closing("a", 1), closing("b1", 2), closing("b2", 2)}
	SortByCloseTime(trades)

	tickets := make([]string, len(trades))
	for i, tr := range trades {
		tickets[i] = tr.Ticket
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, tickets)
}

func TestPipSize(t *testing.T) {
	tests := map[string]float64{
		"EURUSD":   0.0001,
		"eurusd.m": 0.0001,
		"GBPJPY":   0.01,
		"XAUUSD":   0.01,
		"US30":     1,
		"BTC-USD":  1,
	}
	for symbol, want := range tests {
		assert.Equal(t, want, PipSize(symbol), symbol)
	}
}

func TestDefaultedFields_Any(t *testing.T) {
	assert.False(t, DefaultedFields{}.Any())
	assert.True(t, DefaultedFields{Ticket: true}.Any())
	assert.True(t, DefaultedFields{Profit: true}.Any())
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		kind     RatioKind
		str      string
	}{
		{name: "finite", num: 3, den: 2, kind: RatioFinite, str: "1.50"},
		{name: "infinite", num: 5, den: 0, kind: RatioInfinite, str: "∞"},
		{name: "none", num: 0, den: 0, kind: RatioNone, str: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRatio(tt.num, tt.den)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.str, r.String())
			assert.Equal(t, tt.kind == RatioInfinite, r.IsInfinite())
			assert.Equal(t, tt.kind == RatioNone, r.IsNone())
		})
	}
}
