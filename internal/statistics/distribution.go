package statistics

import (
	"math"
	"sort"

	"tradestats/pkg/contracts/domain"
)

// histogram bins trade profits into min(maxBins, ceil(sqrt(n))) uniform
// bins over [min, max]. The last bin is closed so that max is counted.
func histogram(trades []domain.Trade, maxBins int) []domain.HistogramBin {
	if len(trades) == 0 {
		return []domain.HistogramBin{}
	}

	lo, hi := trades[0].Profit(), trades[0].Profit()
	for _, t := range trades[1:] {
		lo = math.Min(lo, t.Profit())
		hi = math.Max(hi, t.Profit())
	}

	if hi == lo {
		return []domain.HistogramBin{{From: lo, To: hi, Count: len(trades)}}
	}

	n := min(maxBins, int(math.Ceil(math.Sqrt(float64(len(trades))))))
	width := (hi - lo) / float64(n)

	bins := make([]domain.HistogramBin, n)
	for i := range bins {
		bins[i].From = lo + float64(i)*width
		bins[i].To = lo + float64(i+1)*width
	}
	bins[n-1].To = hi

	for _, t := range trades {
		idx := int((t.Profit() - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}

// timeBuckets groups trades by the weekday and hour of their close time in
// the zone it was recorded in. Trades without a source close time are left
// out.
func timeBuckets(trades []domain.Trade) ([7]domain.BucketStats, [24]domain.BucketStats) {
	var days [7]domain.BucketStats
	var hours [24]domain.BucketStats

	for _, t := range trades {
		if t.Defaulted.CloseTime {
			continue
		}
		addToBucket(&days[t.CloseTime.Weekday()], t)
		addToBucket(&hours[t.CloseTime.Hour()], t)
	}

	for i := range days {
		days[i].WinRate = fraction(days[i].Wins, days[i].Count)
	}
	for i := range hours {
		hours[i].WinRate = fraction(hours[i].Wins, hours[i].Count)
	}
	return days, hours
}

func addToBucket(b *domain.BucketStats, t domain.Trade) {
	b.Count++
	b.Profit += t.Profit()
	if t.IsWin() {
		b.Wins++
	}
}

// topSymbols returns the most traded symbols, ordered by trade count with
// ties broken alphabetically.
func topSymbols(trades []domain.Trade, limit int) []domain.SymbolStats {
	bySymbol := make(map[string]*domain.SymbolStats)
	for _, t := range trades {
		s, ok := bySymbol[t.Symbol]
		if !ok {
			s = &domain.SymbolStats{Symbol: t.Symbol}
			bySymbol[t.Symbol] = s
		}
		s.Count++
		s.Profit += t.Profit()
		s.Volume += t.Volume
		if t.IsWin() {
			s.Wins++
		}
	}

	out := make([]domain.SymbolStats, 0, len(bySymbol))
	for _, s := range bySymbol {
		s.WinRate = fraction(s.Wins, s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symbol < out[j].Symbol
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
