package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter_RejectsBadInput(t *testing.T) {
	_, err := NewFormatter("not a locale", "USD")
	assert.Error(t, err)

	_, err = NewFormatter("en-US", "FAKE")
	assert.Error(t, err)
}

func TestFormatter_Cents(t *testing.T) {
	f, err := NewFormatter("en-US", "USD")
	require.NoError(t, err)

	out := f.Cents(123456)

	assert.Contains(t, out, "1,234.56")
	assert.Contains(t, out, "$")
}

func TestFormatter_EuroLocale(t *testing.T) {
	f, err := NewFormatter("de-DE", "EUR")
	require.NoError(t, err)

	out := f.Cents(99950)

	assert.Contains(t, out, "€")
}

func TestDefault(t *testing.T) {
	f := Default()

	assert.Equal(t, "USD", f.Code())
	assert.NotEmpty(t, f.Cents(0))
}
