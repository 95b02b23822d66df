// Package shared holds code used across packages that belongs to no single
// layer. Today that is the testutil subpackage:
//
//   - BufferedSlogHandler and NewTestLogger capture slog records so tests
//     can assert on what was logged.
//   - Row, PositionsReport, Table, CSV and the UTF-16 encoders build broker
//     statements in memory for parser tests.
//
// Nothing here may import application packages, so any package's tests can
// use it without an import cycle.
package shared
