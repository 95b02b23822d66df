package exporter

import (
	"strconv"

	"tradestats/pkg/contracts/domain"
)

// TradeRecord is the flat row written by every trade export format.
// Times are Unix milliseconds so that parquet and JSON keep full precision.
type TradeRecord struct {
	Ticket      string   `json:"ticket" parquet:"ticket"`
	Symbol      string   `json:"symbol" parquet:"symbol"`
	Side        string   `json:"side" parquet:"side"`
	Volume      float64  `json:"volume" parquet:"volume"`
	OpenTime    int64    `json:"open_time_ms" parquet:"open_time_ms"`
	OpenPrice   float64  `json:"open_price" parquet:"open_price"`
	CloseTime   int64    `json:"close_time_ms" parquet:"close_time_ms"`
	ClosePrice  float64  `json:"close_price" parquet:"close_price"`
	StopLoss    *float64 `json:"stop_loss,omitempty" parquet:"stop_loss,optional"`
	TakeProfit  *float64 `json:"take_profit,omitempty" parquet:"take_profit,optional"`
	GrossProfit float64  `json:"gross_profit" parquet:"gross_profit"`
	Commission  float64  `json:"commission" parquet:"commission"`
	Swap        float64  `json:"swap" parquet:"swap"`
	NetProfit   float64  `json:"net_profit" parquet:"net_profit"`
	Estimated   bool     `json:"estimated" parquet:"estimated"`
}

// NewTradeRecord flattens a trade. Estimated is set when any field fell back
// to a default.
func NewTradeRecord(t domain.Trade) TradeRecord {
	return TradeRecord{
		Ticket:      t.Ticket,
		Symbol:      t.Symbol,
		Side:        string(t.Side),
		Volume:      t.Volume,
		OpenTime:    t.OpenTime.UnixMilli(),
		OpenPrice:   t.OpenPrice,
		CloseTime:   t.CloseTime.UnixMilli(),
		ClosePrice:  t.ClosePrice,
		StopLoss:    t.StopLoss,
		TakeProfit:  t.TakeProfit,
		GrossProfit: t.GrossProfit,
		Commission:  t.Commission,
		Swap:        t.Swap,
		NetProfit:   t.NetProfit,
		Estimated:   t.Defaulted.Any(),
	}
}

// NewTradeRecords flattens trades in order
func NewTradeRecords(trades []domain.Trade) []TradeRecord {
	records := make([]TradeRecord, len(trades))
	for i, t := range trades {
		records[i] = NewTradeRecord(t)
	}
	return records
}

// tradeHeaders is the column order of tabular trade exports
var tradeHeaders = []string{
	"Ticket", "Symbol", "Side", "Volume", "Open Time", "Open Price",
	"Close Time", "Close Price", "Stop Loss", "Take Profit",
	"Gross Profit", "Commission", "Swap", "Net Profit", "Estimated",
}

// tradeRow renders a trade as strings in tradeHeaders order
func tradeRow(t domain.Trade) []string {
	return []string{
		t.Ticket,
		t.Symbol,
		string(t.Side),
		formatPrice(t.Volume),
		formatTime(t.OpenTime),
		formatPrice(t.OpenPrice),
		formatTime(t.CloseTime),
		formatPrice(t.ClosePrice),
		formatOptional(t.StopLoss),
		formatOptional(t.TakeProfit),
		formatFloat(t.GrossProfit),
		formatFloat(t.Commission),
		formatFloat(t.Swap),
		formatFloat(t.NetProfit),
		strconv.FormatBool(t.Defaulted.Any()),
	}
}
