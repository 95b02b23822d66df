package dataprocessing

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradestats/internal/errors"
	"tradestats/internal/shared/testutil"
	"tradestats/internal/statistics"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	parser, _ := newTestParser(t)
	logger, _ := testutil.NewTestLogger(t)
	return NewAnalyzer(parser, statistics.NewEngine(statistics.Config{}), logger)
}

func TestAnalyzer_Analyze(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	html := testutil.PositionsReport(
		testutil.AccountHeader("Jane Trader", accountText, "Broker Ltd."),
		eurusdRow(),
		gbpusdRow(),
	)

	report, err := analyzer.Analyze(context.Background(), "ReportHistory.html", []byte(html))
	require.NoError(t, err)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.False(t, report.GeneratedAt.IsZero())
	require.NotNil(t, report.Parse)
	require.NotNil(t, report.Statistics)

	stats := report.Statistics
	assert.Equal(t, "USD", stats.Currency)
	assert.Equal(t, 2, stats.TotalTrades)
	assert.Equal(t, 1, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 27.8, stats.NetProfit, 1e-9)
	require.Len(t, stats.EquityCurve, 2)
	assert.Equal(t, "1001", stats.EquityCurve[0].Ticket)
	assert.InDelta(t, 21.5, stats.MaxDrawdown, 1e-9)
}

func TestAnalyzer_PropagatesParseErrors(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	report, err := analyzer.Analyze(context.Background(), "notes.txt", []byte("hello"))
	assert.Nil(t, report)
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedFormat))
}

func TestAnalyzer_ReportIDsAreUnique(t *testing.T) {
	analyzer := newTestAnalyzer(t)
	data := testutil.CSV("EURUSD,buy,0.1,1.1000,1.1050,50.00", "EURUSD,sell,0.1,1.1050,1.1000,50.00")

	first, err := analyzer.Analyze(context.Background(), "a.csv", data)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), "a.csv", data)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, first.Statistics.Currency)
	assert.Same(t, analyzer.Parser(), analyzer.parser)
}
