package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintwin-app/fintwin/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_ValidUTF8PassesThrough(t *testing.T) {
	input := "Date,Description,Amount\n2026-08-01,Café Orçamento,-12.50\n"

	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	content := "Date,Description,Amount\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	assert.Equal(t, content, decode(t, input))
}

func TestNewUTF8Reader_DecodesUTF16LE(t *testing.T) {
	// "Date\n" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'D', 0, 'a', 0, 't', 0, 'e', 0, '\n', 0}

	assert.Equal(t, "Date\n", decode(t, input))
}

func TestNewUTF8Reader_DecodesWindows1252(t *testing.T) {
	// "Visão Geral\n" in Windows-1252: ã = 0xE3.
	input := []byte{'V', 'i', 's', 0xE3, 'o', ' ', 'G', 'e', 'r', 'a', 'l', '\n'}

	assert.Equal(t, "Visão Geral\n", decode(t, input))
}

func TestNewUTF8Reader_EmptyInput(t *testing.T) {
	assert.Empty(t, decode(t, nil))
}
