package normalize

import (
	"regexp"
	"strings"

	"tradestats/pkg/contracts/domain"
)

// Side infers the trade direction from free text. Anything mentioning sell
// or short is a sell; everything else is a buy.
func Side(raw string) domain.TradeSide {
	s := strings.ToLower(raw)
	if strings.Contains(s, "sell") || strings.Contains(s, "short") {
		return domain.TradeSideSell
	}
	return domain.TradeSideBuy
}

// StrictSide accepts only type cells that read as a buy or sell order,
// such as "buy", "Sell", "buy limit" or "sell stop". Balance, credit and
// other account operations are rejected.
func StrictSide(raw string) (domain.TradeSide, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "buy"):
		return domain.TradeSideBuy, true
	case strings.HasPrefix(s, "sell"):
		return domain.TradeSideSell, true
	default:
		return "", false
	}
}

var nonTradePattern = regexp.MustCompile(`(?i)\b(balance|deposit|withdraw(al)?|summary|credit|rebate)\b`)

// IsNonTradeRow reports whether a row records an account operation or a
// summary line rather than a trade.
func IsNonTradeRow(cells []string) bool {
	return nonTradePattern.MatchString(strings.Join(cells, " "))
}
