package schema

import (
	"regexp"
	"strings"
)

// Field is a canonical trade attribute a column can map to
type Field string

const (
	FieldTicket     Field = "ticket"
	FieldOpenTime   Field = "openTime"
	FieldCloseTime  Field = "closeTime"
	FieldSide       Field = "side"
	FieldVolume     Field = "volume"
	FieldSymbol     Field = "symbol"
	FieldOpenPrice  Field = "openPrice"
	FieldClosePrice Field = "closePrice"
	FieldProfit     Field = "profit"
	FieldCommission Field = "commission"
	FieldSwap       Field = "swap"
	FieldStopLoss   Field = "stopLoss"
	FieldTakeProfit Field = "takeProfit"
)

// ColumnMap maps canonical fields to cell positions within a row
type ColumnMap map[Field]int

// Index returns the cell position of f
func (m ColumnMap) Index(f Field) (int, bool) {
	i, ok := m[f]
	return i, ok
}

// Cell returns the raw text of f in cells, or "" when the field is not
// mapped or the row is too short.
func (m ColumnMap) Cell(cells []string, f Field) string {
	i, ok := m[f]
	if !ok || i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// Has reports whether f is mapped to a cell present in cells
func (m ColumnMap) Has(cells []string, f Field) bool {
	i, ok := m[f]
	return ok && i >= 0 && i < len(cells) && strings.TrimSpace(cells[i]) != ""
}

// columnPattern pairs a canonical field with the header text that selects it
type columnPattern struct {
	field   Field
	pattern *regexp.Regexp
}

// headerPatterns is evaluated top to bottom for every header cell. Specific
// captions come before the bare "Time"/"Price" captions so that layouts with
// two unnamed time or price columns map the first to open and the second to
// close.
var headerPatterns = []columnPattern{
	{FieldTicket, regexp.MustCompile(`(?i)^(ticket|position|order|deal|id|#|no\.?)$|\b(ticket|(position|order|deal|trade)\s*(id|#|no\.?|number))\b`)},
	{FieldOpenTime, regexp.MustCompile(`(?i)\b(open|entry)\s*(time|date)\b|\btime\s*open\b|^opened$`)},
	{FieldCloseTime, regexp.MustCompile(`(?i)\b(close|exit)\s*(time|date)\b|\btime\s*close\b|^closed$`)},
	{FieldSide, regexp.MustCompile(`(?i)^(type|side|direction|action|buy\s*/\s*sell|deal\s*type)$`)},
	{FieldVolume, regexp.MustCompile(`(?i)^(volume|size|lots?|lot\s*size|quantity|qty|amount|units)\b`)},
	{FieldSymbol, regexp.MustCompile(`(?i)^(symbol|instrument|pair|item|asset|ticker|market|currency\s*pair)\b`)},
	{FieldOpenPrice, regexp.MustCompile(`(?i)\b(open|entry)\s*price\b|\bprice\s*open\b`)},
	{FieldClosePrice, regexp.MustCompile(`(?i)\b(close|exit)\s*price\b|\bprice\s*close\b`)},
	{FieldProfit, regexp.MustCompile(`(?i)^(net\s*|gross\s*)?(profit|p\s*[&/]?\s*l|pnl|result|realized)\b`)},
	{FieldCommission, regexp.MustCompile(`(?i)\b(commission|comm\.?|fees?)\b`)},
	{FieldSwap, regexp.MustCompile(`(?i)\b(swap|rollover|financing)\b`)},
	{FieldStopLoss, regexp.MustCompile(`(?i)^(s\s*/\s*l|sl|stop\s*loss)$`)},
	{FieldTakeProfit, regexp.MustCompile(`(?i)^(t\s*/\s*p|tp|take\s*profit)$`)},
	{FieldOpenTime, regexp.MustCompile(`(?i)^(time|date)$`)},
	{FieldCloseTime, regexp.MustCompile(`(?i)^(time|date)$`)},
	{FieldOpenPrice, regexp.MustCompile(`(?i)^price$`)},
	{FieldClosePrice, regexp.MustCompile(`(?i)^price$`)},
}

// requiredFields must all resolve for a named mapping to be accepted
var requiredFields = []Field{FieldSymbol, FieldProfit}

// InferColumns matches each header cell against the ordered pattern table.
// A field keeps the first column it was assigned to. The mapping is returned
// only when every required field resolved.
func InferColumns(header []string) (ColumnMap, bool) {
	columns := make(ColumnMap)

	for i, raw := range header {
		caption := strings.TrimSpace(raw)
		if caption == "" {
			continue
		}
		for _, p := range headerPatterns {
			if _, taken := columns[p.field]; taken {
				continue
			}
			if p.pattern.MatchString(caption) {
				columns[p.field] = i
				break
			}
		}
	}

	for _, f := range requiredFields {
		if _, ok := columns[f]; !ok {
			return nil, false
		}
	}
	return columns, true
}
