package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tradestats/internal/errors"
	"tradestats/pkg/contracts/domain"
)

func TestTradeValidator_Validate(t *testing.T) {
	valid := domain.TradeInput{Ticket: "1", Symbol: "EURUSD", Side: domain.TradeSideBuy, Volume: 0.1}

	tests := []struct {
		name     string
		mutate   func(t *domain.Trade)
		wantErr  bool
		contains string
	}{
		{
			name:   "valid",
			mutate: func(t *domain.Trade) {},
		},
		{
			name:     "unknown symbol",
			mutate:   func(t *domain.Trade) { t.Symbol = domain.UnknownSymbol },
			wantErr:  true,
			contains: "symbol must not be UNKNOWN",
		},
		{
			name:     "empty symbol",
			mutate:   func(t *domain.Trade) { t.Symbol = "" },
			wantErr:  true,
			contains: "symbol is required",
		},
		{
			name:     "missing ticket",
			mutate:   func(t *domain.Trade) { t.Ticket = "" },
			wantErr:  true,
			contains: "ticket is required",
		},
		{
			name:     "zero volume",
			mutate:   func(t *domain.Trade) { t.Volume = 0 },
			wantErr:  true,
			contains: "volume must be greater than 0",
		},
		{
			name:     "bad side",
			mutate:   func(t *domain.Trade) { t.Side = "hold" },
			wantErr:  true,
			contains: "side must be one of: buy, sell",
		},
	}

	v := NewTradeValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := domain.NewTrade(valid)
			tt.mutate(&trade)

			err := v.Validate(trade)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
		})
	}
}
