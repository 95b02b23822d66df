package charset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradestats/internal/shared/testutil"
)

func TestDetect(t *testing.T) {
	ascii := []byte("<html><body><table><tr><td>EURUSD</td></tr></table></body></html>")

	tests := []struct {
		name   string
		data   []byte
		markup bool
		want   Encoding
	}{
		{
			name:   "little endian BOM",
			data:   append([]byte{0xFF, 0xFE}, 'a', 0),
			markup: true,
			want:   UTF16LE,
		},
		{
			name:   "big endian BOM",
			data:   append([]byte{0xFE, 0xFF}, 0, 'a'),
			markup: true,
			want:   UTF16BE,
		},
		{
			name:   "plain ascii",
			data:   ascii,
			markup: true,
			want:   UTF8,
		},
		{
			name:   "bomless utf-16le",
			data:   testutil.UTF16LE(string(ascii), false),
			markup: true,
			want:   UTF16LE,
		},
		{
			name:   "delimited input bypasses detection",
			data:   append([]byte{0xFF, 0xFE}, 'a', 0),
			markup: false,
			want:   UTF8,
		},
		{
			name:   "empty",
			data:   nil,
			markup: true,
			want:   UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.data, tt.markup))
		})
	}
}

func TestDetect_HeuristicThreshold(t *testing.T) {
	// exactly 20 hits is not enough, 21 is
	build := func(hits int) []byte {
		var buf bytes.Buffer
		for i := 0; i < 50; i++ {
			if i < hits {
				buf.Write([]byte{'x', 0x00})
			} else {
				buf.Write([]byte{'x', 'y'})
			}
		}
		return buf.Bytes()
	}

	assert.Equal(t, UTF8, Detect(build(20), true))
	assert.Equal(t, UTF16LE, Detect(build(21), true))
}

func TestDetect_OnlyFirstHundredBytesSampled(t *testing.T) {
	data := bytes.Repeat([]byte("ab"), 50)
	data = append(data, bytes.Repeat([]byte{'x', 0x00}, 100)...)

	assert.Equal(t, UTF8, Detect(data, true))
}

func TestDecode(t *testing.T) {
	text := "<table><tr><td>Positions</td></tr></table>"

	t.Run("utf-16le with BOM", func(t *testing.T) {
		got, enc, err := Decode(testutil.UTF16LE(text, true), true)
		require.NoError(t, err)
		assert.Equal(t, UTF16LE, enc)
		assert.Equal(t, text, got)
	})

	t.Run("utf-16le without BOM", func(t *testing.T) {
		got, enc, err := Decode(testutil.UTF16LE(text, false), true)
		require.NoError(t, err)
		assert.Equal(t, UTF16LE, enc)
		assert.Equal(t, text, got)
	})

	t.Run("utf-16be with BOM", func(t *testing.T) {
		got, enc, err := Decode(testutil.UTF16BE(text), true)
		require.NoError(t, err)
		assert.Equal(t, UTF16BE, enc)
		assert.Equal(t, text, got)
	})

	t.Run("utf-8 BOM is stripped", func(t *testing.T) {
		got, enc, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, "Symbol,Profit"...), false)
		require.NoError(t, err)
		assert.Equal(t, UTF8, enc)
		assert.Equal(t, "Symbol,Profit", got)
	})
}
