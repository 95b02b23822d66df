package charset

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the text decoding chosen for an input buffer
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
)

const (
	// sampleWindow is how many leading bytes the BOM-less heuristic inspects
	sampleWindow = 100
	// minZeroPairs is the hit count the heuristic must exceed
	minZeroPairs = 20
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect chooses the decoding for data. Delimited text (markup == false)
// always decodes as UTF-8.
func Detect(data []byte, markup bool) Encoding {
	if !markup {
		return UTF8
	}
	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			return UTF16LE
		case data[0] == 0xFE && data[1] == 0xFF:
			return UTF16BE
		}
	}
	if looksLikeUTF16LE(data) {
		return UTF16LE
	}
	return UTF8
}

// looksLikeUTF16LE counts "printable ASCII byte followed by 0x00" pairs at
// even offsets of the sample window.
func looksLikeUTF16LE(data []byte) bool {
	limit := len(data)
	if limit > sampleWindow {
		limit = sampleWindow
	}
	hits := 0
	for i := 0; i+1 < limit; i += 2 {
		if data[i] >= 0x20 && data[i] <= 0x7E && data[i+1] == 0x00 {
			hits++
		}
	}
	return hits > minZeroPairs
}

// Decode detects the encoding of data and returns it as a Go string
func Decode(data []byte, markup bool) (string, Encoding, error) {
	enc := Detect(data, markup)

	var decoder encoding.Encoding
	switch enc {
	case UTF16LE:
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		decoder = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return string(bytes.TrimPrefix(data, utf8BOM)), enc, nil
	}

	out, err := decoder.NewDecoder().Bytes(data)
	if err != nil {
		return "", enc, fmt.Errorf("failed to decode %s input: %w", enc, err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), enc, nil
}
