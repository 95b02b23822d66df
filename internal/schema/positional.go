package schema

import (
	"regexp"
	"strings"

	"tradestats/pkg/contracts/domain"
)

// Cell counts of the fixed layouts
const (
	BrokerLayoutCells    = 13
	MinimalLayoutCells   = 6
	PositionsLayoutCells = 13
)

func layout(fields ...Field) ColumnMap {
	m := make(ColumnMap, len(fields))
	for i, f := range fields {
		m[f] = i
	}
	return m
}

// brokerLayout is the 13-column headerless delimited export
var brokerLayout = layout(
	FieldTicket, FieldOpenTime, FieldSide, FieldVolume, FieldSymbol, FieldOpenPrice,
	FieldStopLoss, FieldTakeProfit, FieldCloseTime, FieldClosePrice,
	FieldCommission, FieldSwap, FieldProfit,
)

// minimalLayout is the 6-column headerless delimited export
var minimalLayout = layout(
	FieldSymbol, FieldSide, FieldVolume, FieldOpenPrice, FieldClosePrice, FieldProfit,
)

// PositionsLayout is the visible-cell order of a Positions report row
var PositionsLayout = layout(
	FieldOpenTime, FieldTicket, FieldSymbol, FieldSide, FieldVolume, FieldOpenPrice,
	FieldStopLoss, FieldTakeProfit, FieldCloseTime, FieldClosePrice,
	FieldCommission, FieldSwap, FieldProfit,
)

// DelimitedLayout returns the positional mapping for a headerless delimited
// row with cellCount cells. Only the enumerated shapes are recognized.
func DelimitedLayout(cellCount int) (ColumnMap, bool) {
	switch cellCount {
	case BrokerLayoutCells:
		return brokerLayout, true
	case MinimalLayoutCells:
		return minimalLayout, true
	default:
		return nil, false
	}
}

var (
	numericToken = regexp.MustCompile(`^[-+]?(\d{1,3}(?:[,.]\d{3})+|\d[\d\s]*)([.,]\d+)?$`)
	symbolToken  = regexp.MustCompile(`^[A-Za-z]{6,}$`)
	pairToken    = regexp.MustCompile(`^([A-Za-z]{3})/([A-Za-z]{3})$`)
	dateToken    = regexp.MustCompile(`^(\d{4}[.\-/]\d{1,2}[.\-/]\d{1,2}|\d{1,2}\.\d{1,2}\.\d{4})`)
)

// Guess is what the cell scanner could recover from a row without a header
type Guess struct {
	Symbol    string
	Side      domain.TradeSide
	Profit    string
	OpenTime  string
	CloseTime string
}

// ScanCells recovers a trade from unlabeled cells. Profit is the rightmost
// numeric token; symbol is the first long alphabetic token or AAA/BBB pair;
// side is sell when any cell mentions sell or short. Both profit and symbol
// are required.
func ScanCells(cells []string) (Guess, bool) {
	g := Guess{Side: domain.TradeSideBuy}

	for i := len(cells) - 1; i >= 0; i-- {
		c := strings.TrimSpace(cells[i])
		if numericToken.MatchString(c) {
			g.Profit = c
			break
		}
	}

	var dates []string
	for _, raw := range cells {
		c := strings.TrimSpace(raw)
		lower := strings.ToLower(c)
		if strings.Contains(lower, "sell") || strings.Contains(lower, "short") {
			g.Side = domain.TradeSideSell
		}
		if g.Symbol == "" {
			if m := pairToken.FindStringSubmatch(c); m != nil {
				g.Symbol = strings.ToUpper(m[1] + m[2])
			} else if symbolToken.MatchString(c) {
				g.Symbol = strings.ToUpper(c)
			}
		}
		if dateToken.MatchString(c) {
			dates = append(dates, c)
		}
	}

	if len(dates) > 0 {
		g.OpenTime = dates[0]
		g.CloseTime = dates[len(dates)-1]
	}

	return g, g.Profit != "" && g.Symbol != ""
}
