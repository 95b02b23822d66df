package domain

import (
	"time"
)

// SourceFormat identifies how an input file is parsed
type SourceFormat string

const (
	SourceFormatDelimited SourceFormat = "delimited"
	SourceFormatMarkup    SourceFormat = "markup"
)

// AccountInfo is metadata harvested from a markup statement header
type AccountInfo struct {
	Number   string `json:"number,omitempty"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
	Company  string `json:"company,omitempty"`
	Server   string `json:"server,omitempty"`
}

// IsEmpty reports whether nothing was harvested
func (a AccountInfo) IsEmpty() bool {
	return a == AccountInfo{}
}

// RowWarning describes a source row that was skipped
type RowWarning struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParseResult is the output of parsing one statement file
type ParseResult struct {
	Filename string       `json:"filename"`
	Format   SourceFormat `json:"format"`
	Encoding string       `json:"encoding"`
	Trades   []Trade      `json:"trades"`
	Account  AccountInfo  `json:"account"`
	Warnings []RowWarning `json:"warnings,omitempty"`
}

// Report combines parsed trades with the statistics derived from them
type Report struct {
	ID          string       `json:"id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Parse       *ParseResult `json:"parse"`
	Statistics  *Statistics  `json:"statistics"`
}
