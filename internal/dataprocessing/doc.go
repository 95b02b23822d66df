// Package dataprocessing runs the statement pipeline: it detects the format
// and encoding of a broker export, extracts its rows, infers the column
// layout, builds trades and hands them to the statistics engine.
//
// # Pipeline
//
// TradeParser.Parse picks a reader by file extension:
//
//  1. Delimited (.csv): a named header on the first line is used when one is
//     recognized; otherwise each line is read by its cell count.
//  2. Markup (.html, .htm): the Positions section is read first, then every
//     table as a fallback. Hidden cells are ignored and account metadata is
//     harvested from the document header.
//
// Rows that cannot be turned into a trade are skipped and reported as
// warnings on the ParseResult. A file that yields no trade fails with
// errors.ErrNoTrades.
//
// # Usage
//
//	parser := dataprocessing.NewTradeParser(logger, metrics)
//	analyzer := dataprocessing.NewAnalyzer(parser, statistics.NewEngine(statistics.Config{}), logger)
//	report, err := analyzer.Analyze(ctx, "statement.html", data)
package dataprocessing
