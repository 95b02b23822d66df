package exporter

import (
	"encoding/json"
	"io"

	"tradestats/pkg/contracts/domain"
)

// WriteStatisticsCSV writes the statistics bundle as three CSV sections:
// the summary metrics, the top symbols and the time buckets.
func (w *CSVWriter) WriteStatisticsCSV(filePath string, stats *domain.Statistics) error {
	summary := Summary(stats)
	records := make([][]string, 0, len(summary))
	for _, r := range summary {
		records = append(records, []string{r.Metric, r.Value})
	}

	if err := w.WriteCSV(filePath, WriteOptions{
		Headers:   []string{"Metric", "Value"},
		Records:   records,
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	symbols := append([][]string{{}, symbolHeaders}, symbolRows(stats)...)
	if err := w.AppendToCSV(filePath, symbols); err != nil {
		return err
	}

	buckets := append([][]string{{}, {"Bucket", "Key", "Trades", "Profit", "Win Rate"}}, bucketRows(stats)...)
	return w.AppendToCSV(filePath, buckets)
}

// WriteReportJSON writes report as indented JSON
func WriteReportJSON(out io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
