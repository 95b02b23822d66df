// Package exporter writes parsed trades and statistics reports to files.
//
// Trade collections are written through a TradeSaver chosen by format:
// csv, json, parquet or xlsx. Every format writes the same TradeRecord
// columns. Full reports go through XLSXReport (a trades sheet plus a
// statistics sheet), CSVWriter.WriteStatisticsCSV or WriteReportJSON.
//
// Example usage:
//
//	saver, err := exporter.NewTradeSaver("parquet")
//	if err != nil {
//	    return err
//	}
//	err = saver.Save(report.Parse.Trades, filepath.Join(dir, "trades."+saver.Extension()))
package exporter
