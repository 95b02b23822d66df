package testutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const hiddenMarker = "\x00hidden\x00"

// Hidden marks a cell so Row renders it with class="hidden"
func Hidden(text string) string {
	return hiddenMarker + text
}

// Row renders one markup table row. Cells wrapped with Hidden are rendered
// as hidden padding cells.
func Row(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		if strings.HasPrefix(c, hiddenMarker) {
			fmt.Fprintf(&b, `<td class="hidden" colspan="8">%s</td>`, strings.TrimPrefix(c, hiddenMarker))
			continue
		}
		fmt.Fprintf(&b, "<td>%s</td>", c)
	}
	b.WriteString("</tr>")
	return b.String()
}

// SectionRow renders a report section header such as "Positions" or "Orders"
func SectionRow(title string) string {
	return fmt.Sprintf(`<tr align="center"><th colspan="13" style="height: 25px"><div style="font: 10pt Tahoma"><b>%s</b></div></th></tr>`, title)
}

// PositionsHeaderRow is the column caption row that follows the Positions marker
func PositionsHeaderRow() string {
	return Row("Time", "Position", "Symbol", "Type", "Volume", "Price", "S / L", "T / P",
		"Time", "Price", "Commission", "Swap", "Profit")
}

// AccountHeader renders the label/value block at the top of a trade history report
func AccountHeader(name, account, company string) string {
	return fmt.Sprintf(`<tr><th colspan="3" align="right">Name:</th><th colspan="10" align="left"><b>%s</b></th></tr>
<tr><th colspan="3" align="right">Account:</th><th colspan="10" align="left"><b>%s</b></th></tr>
<tr><th colspan="3" align="right">Company:</th><th colspan="10" align="left"><b>%s</b></th></tr>`, name, account, company)
}

// PositionsReport assembles a complete trade history document with a
// Positions section holding rows, followed by an Orders section.
func PositionsReport(header string, rows ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>Trade History Report</title></head><body>")
	b.WriteString(`<table cellspacing="1" cellpadding="3" border="0">`)
	b.WriteString(header)
	b.WriteString(SectionRow("Positions"))
	b.WriteString(PositionsHeaderRow())
	for _, r := range rows {
		b.WriteString(r)
	}
	b.WriteString(SectionRow("Orders"))
	b.WriteString(Row("2024.01.02 10:00:00", "1001", "EURUSD", "buy", "0.10 / 0.10", "", "", "", "2024.01.02 10:00:00", "filled", ""))
	b.WriteString("</table></body></html>")
	return b.String()
}

// Table renders a plain markup table from a header and data rows
func Table(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<table>")
	if len(header) > 0 {
		b.WriteString("<tr>")
		for _, h := range header {
			fmt.Fprintf(&b, "<th>%s</th>", h)
		}
		b.WriteString("</tr>")
	}
	for _, r := range rows {
		b.WriteString(Row(r...))
	}
	b.WriteString("</table>")
	return b.String()
}

// CSV joins lines into a delimited text payload
func CSV(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

// UTF16LE encodes s as little-endian 16-bit text, with or without a BOM
func UTF16LE(s string, withBOM bool) []byte {
	policy := unicode.IgnoreBOM
	if withBOM {
		policy = unicode.UseBOM
	}
	out, err := unicode.UTF16(unicode.LittleEndian, policy).NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return out
}

// UTF16BE encodes s as big-endian 16-bit text with a BOM
func UTF16BE(s string) []byte {
	out, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return out
}
