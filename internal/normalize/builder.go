package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "tradestats/internal/errors"
	"tradestats/internal/schema"
	"tradestats/internal/validation"
	"tradestats/pkg/contracts/domain"
)

// Builder turns raw row cells into validated trades. A Builder is bound to
// a single parse and is not shared between goroutines.
type Builder struct {
	validator *validation.TradeValidator
	location  *time.Location
	now       func() time.Time
	ticket    func(now time.Time) string
	strict    bool
}

// Option configures a Builder
type Option func(*Builder)

// WithLocation sets the zone used for timestamps that carry no offset
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.location = loc
		}
	}
}

// WithClock replaces the reference time used for missing timestamps
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithTicketFunc replaces ticket synthesis for rows without a ticket
func WithTicketFunc(fn func(now time.Time) string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.ticket = fn
		}
	}
}

// WithStrictSide requires the side cell to read as a buy or sell order
func WithStrictSide() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// NewBuilder creates a Builder reading zone-less times in UTC
func NewBuilder(v *validation.TradeValidator, opts ...Option) *Builder {
	if v == nil {
		v = validation.NewTradeValidator()
	}
	b := &Builder{
		validator: v,
		location:  time.UTC,
		now:       time.Now,
		ticket:    SyntheticTicket,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SyntheticTicket returns "<unix-millis>-<8 hex chars>"
func SyntheticTicket(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), id[:8])
}

// Build maps cells through columns and constructs a Trade. Rows that are
// account operations, lack a symbol or fail validation are reported as a
// *errors.RowError; missing or unreadable fields fall back to defaults.
func (b *Builder) Build(row int, cells []string, columns schema.ColumnMap) (domain.Trade, error) {
	if IsNonTradeRow(cells) {
		return domain.Trade{}, apperrors.NewRowError(row, "non-trade row", nil)
	}

	now := b.now()
	in := domain.TradeInput{}

	if b.strict {
		side, ok := StrictSide(columns.Cell(cells, schema.FieldSide))
		if !ok {
			return domain.Trade{}, apperrors.NewRowError(row,
				fmt.Sprintf("type %q is not a buy or sell", columns.Cell(cells, schema.FieldSide)), nil)
		}
		in.Side = side
	} else {
		in.Side = Side(columns.Cell(cells, schema.FieldSide))
	}

	in.Symbol = strings.ToUpper(strings.TrimSpace(columns.Cell(cells, schema.FieldSymbol)))
	if in.Symbol == "" {
		in.Symbol = domain.UnknownSymbol
	}

	in.Ticket = strings.TrimSpace(columns.Cell(cells, schema.FieldTicket))
	if in.Ticket == "" {
		in.Ticket = b.ticket(now)
		in.Defaulted.Ticket = true
	}

	vol := Volume(columns.Cell(cells, schema.FieldVolume))
	in.Volume, in.Defaulted.Volume = vol.Value, vol.Fallback

	open := Number(columns.Cell(cells, schema.FieldOpenPrice))
	in.OpenPrice, in.Defaulted.OpenPrice = open.Value, open.Fallback
	closing := Number(columns.Cell(cells, schema.FieldClosePrice))
	in.ClosePrice, in.Defaulted.ClosePrice = closing.Value, closing.Fallback

	openTime := Time(columns.Cell(cells, schema.FieldOpenTime), now, b.location)
	in.OpenTime, in.Defaulted.OpenTime = openTime.Value, openTime.Fallback
	closeTime := Time(columns.Cell(cells, schema.FieldCloseTime), now, b.location)
	in.CloseTime, in.Defaulted.CloseTime = closeTime.Value, closeTime.Fallback

	profit := Number(columns.Cell(cells, schema.FieldProfit))
	in.GrossProfit, in.Defaulted.Profit = profit.Value, profit.Fallback
	in.Commission = Number(columns.Cell(cells, schema.FieldCommission)).Value
	in.Swap = Number(columns.Cell(cells, schema.FieldSwap)).Value

	in.StopLoss = optionalLevel(columns.Cell(cells, schema.FieldStopLoss))
	in.TakeProfit = optionalLevel(columns.Cell(cells, schema.FieldTakeProfit))

	return b.finish(row, in)
}

// BuildGuess constructs a Trade from what ScanCells recovered. Every field
// the scanner does not supply takes its default.
func (b *Builder) BuildGuess(row int, g schema.Guess) (domain.Trade, error) {
	now := b.now()
	in := domain.TradeInput{
		Ticket: b.ticket(now),
		Symbol: g.Symbol,
		Side:   g.Side,
		Volume: domain.MinVolume,
		Defaulted: domain.DefaultedFields{
			Ticket:     true,
			Volume:     true,
			OpenPrice:  true,
			ClosePrice: true,
		},
	}

	profit := Number(g.Profit)
	in.GrossProfit, in.Defaulted.Profit = profit.Value, profit.Fallback

	openTime := Time(g.OpenTime, now, b.location)
	in.OpenTime, in.Defaulted.OpenTime = openTime.Value, openTime.Fallback
	closeTime := Time(g.CloseTime, now, b.location)
	in.CloseTime, in.Defaulted.CloseTime = closeTime.Value, closeTime.Fallback

	return b.finish(row, in)
}

func (b *Builder) finish(row int, in domain.TradeInput) (domain.Trade, error) {
	trade := domain.NewTrade(in)
	if err := b.validator.Validate(trade); err != nil {
		return domain.Trade{}, apperrors.NewRowError(row, "invalid trade", err)
	}
	return trade, nil
}

// optionalLevel reads a stop-loss or take-profit cell. Blank, unparseable
// and zero levels mean no order was set.
func optionalLevel(raw string) *float64 {
	n := Number(raw)
	if n.Fallback || n.Value == 0 {
		return nil
	}
	v := n.Value
	return &v
}
