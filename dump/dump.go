// Package dump renders sparse memories as hex dumps.
//
// Occupied bytes print as two hex digits; gap bytes print as "--" and are
// never materialized into a filled buffer. Runs of fully-empty rows collapse
// into a single "*" marker, hexdump style. The preview column decodes
// occupied bytes as ASCII, Latin-1, or UTF-16LE.
package dump

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	textunicode "golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/sparsekit/sparse"
)

// Encoding selects how the preview column decodes occupied bytes.
type Encoding int

const (
	// ASCII previews printable 7-bit bytes and masks the rest.
	ASCII Encoding = iota
	// Latin1 decodes each byte through ISO 8859-1.
	Latin1
	// UTF16LE decodes byte pairs as UTF-16 little-endian code units.
	UTF16LE
)

// DefaultWidth is the number of byte columns per row.
const DefaultWidth = 16

// Options controls dump rendering. The zero value renders the memory's
// whole span, 16 bytes per row, with an ASCII preview.
type Options struct {
	// Start and Endex bound the dumped range; sparse.Open means the
	// memory's own span edge.
	Start int64
	Endex int64
	// Width is the number of bytes per row; 0 means DefaultWidth.
	Width int
	// Encoding selects the preview decoding.
	Encoding Encoding
	// NoPreview drops the preview column entirely.
	NoPreview bool
}

type cell struct {
	value    byte
	occupied bool
}

// Dump writes a hex dump of the memory to w.
func Dump(w io.Writer, m *sparse.Memory, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	start, endex := opts.Start, opts.Endex
	if start == 0 && endex == 0 {
		// Zero-value Options means the whole span.
		start, endex = sparse.Open, sparse.Open
	}
	if start == sparse.Open {
		start = m.Start()
	}
	if endex == sparse.Open {
		endex = m.Endex()
	}
	if endex < start {
		endex = start
	}
	if start == endex {
		return nil
	}

	row := make([]cell, width)
	elided := false
	// Rows align to multiples of width so addresses stay stable across
	// dumps of different ranges.
	for base := start - mod(start, int64(width)); base < endex; base += int64(width) {
		occupied := 0
		for i := range row {
			addr := base + int64(i)
			if addr < start || addr >= endex {
				row[i] = cell{}
				continue
			}
			v, ok := m.Peek(addr)
			row[i] = cell{value: v, occupied: ok}
			if ok {
				occupied++
			}
		}
		if occupied == 0 {
			if !elided {
				if _, err := fmt.Fprintln(w, "*"); err != nil {
					return err
				}
				elided = true
			}
			continue
		}
		elided = false
		if _, err := io.WriteString(w, renderRow(base, row, opts)); err != nil {
			return err
		}
	}
	return nil
}

// String renders the memory's whole span with default options.
func String(m *sparse.Memory) string {
	var sb strings.Builder
	_ = Dump(&sb, m, Options{Start: sparse.Open, Endex: sparse.Open})
	return sb.String()
}

func renderRow(base int64, row []cell, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%08x  ", base)
	for i, c := range row {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		if c.occupied {
			fmt.Fprintf(&sb, "%02x ", c.value)
		} else {
			sb.WriteString("-- ")
		}
	}
	if opts.NoPreview {
		return strings.TrimRight(sb.String(), " ") + "\n"
	}
	sb.WriteString(" |")
	sb.WriteString(preview(row, opts.Encoding))
	sb.WriteString("|\n")
	return sb.String()
}

// preview decodes the row's occupied bytes for the right-hand column.
// Gaps and unprintable runes mask to '.'.
func preview(row []cell, enc Encoding) string {
	var sb strings.Builder
	switch enc {
	case Latin1:
		for _, c := range row {
			sb.WriteRune(previewRune(c, charmap.ISO8859_1.DecodeByte(c.value)))
		}
	case UTF16LE:
		dec := textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM).NewDecoder()
		for i := 0; i+1 < len(row); i += 2 {
			lo, hi := row[i], row[i+1]
			if !lo.occupied || !hi.occupied {
				sb.WriteByte('.')
				continue
			}
			decoded, err := dec.Bytes([]byte{lo.value, hi.value})
			if err != nil {
				sb.WriteByte('.')
				continue
			}
			r, _ := utf8.DecodeRune(decoded)
			sb.WriteRune(previewRune(lo, r))
		}
	default: // ASCII
		for _, c := range row {
			r := rune(c.value)
			if r > unicode.MaxASCII {
				r = '.'
			}
			sb.WriteRune(previewRune(c, r))
		}
	}
	return sb.String()
}

func previewRune(c cell, r rune) rune {
	if !c.occupied || r == utf8.RuneError || !unicode.IsPrint(r) {
		return '.'
	}
	return r
}

func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
