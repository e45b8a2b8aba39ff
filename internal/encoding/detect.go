// Package encoding normalizes bank statement files to UTF-8 before
// parsing. Banks export CSVs in whatever their core system speaks, so
// the charset has to be sniffed, never assumed.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize bounds how much of the file is inspected before deciding.
const sniffSize = 8192

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that yields UTF-8 regardless of the
// source charset. A UTF-8 BOM is stripped, UTF-16 BOMs select the matching
// decoder, valid UTF-8 passes through, and everything else goes through
// charset detection with a Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing statement encoding: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if dec := bomDecoder(head); dec != nil {
		return transform.NewReader(br, dec), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, legacyDecoder(head)), nil
}

func bomDecoder(head []byte) transform.Transformer {
	switch {
	case bytes.HasPrefix(head, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case bytes.HasPrefix(head, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	default:
		return nil
	}
}

// legacyDecoder picks a single-byte decoder for BOM-less non-UTF-8 input.
// Windows-1252 is the catch-all: it decodes any byte sequence and covers
// the bulk of western European bank exports.
func legacyDecoder(head []byte) *encoding.Decoder {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252.NewDecoder()
	}

	switch result.Charset {
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	default:
		return charmap.Windows1252.NewDecoder()
	}
}
