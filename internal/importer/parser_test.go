package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

func TestParser_GenericCommaStatement(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2026-08-01,ACME Payroll Salary,3000.00",
		"2026-08-03,Corner Supermarket,-45.10",
		"2026-08-05,Uber Trip,-12.30",
		"",
	}, "\n")

	txs, err := NewParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, transaction.TypeIncome, txs[0].Type)
	assert.Equal(t, int64(300000), txs[0].Amount)
	assert.Equal(t, "Income", txs[0].Category)

	assert.Equal(t, transaction.TypeExpense, txs[1].Type)
	assert.Equal(t, int64(4510), txs[1].Amount)
	assert.Equal(t, "Food", txs[1].Category)
	assert.Equal(t, time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC), txs[1].Date)

	assert.Equal(t, "Transport", txs[2].Category)
}

func TestParser_SemicolonEuropeanStatement(t *testing.T) {
	input := strings.Join([]string{
		"Conta;12345",
		"Data;Descrição;Montante",
		"02/08/2026;Restaurante Mar;-1.234,56",
		"05/08/2026;Loja Online;-10,00",
	}, "\n")

	txs, err := NewParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(123456), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC), txs[0].Date)
	assert.Equal(t, int64(1000), txs[1].Amount)
}

func TestParser_SplitDebitCredit(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Debit,Credit",
		"2026-08-01,Monthly Rent,1200.00,",
		"2026-08-02,Refund received,,35.50",
	}, "\n")

	txs, err := NewParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.Equal(t, int64(120000), txs[0].Amount)
	assert.Equal(t, "Housing", txs[0].Category)

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.Equal(t, int64(3550), txs[1].Amount)
}

func TestParser_SkipsFooterAndJunkRows(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2026-08-01,Cinema Night,-15.00",
		"Closing balance,,987.65",
		",,",
		"Total,,1002.65",
	}, "\n")

	txs, err := NewParser().Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Entertainment", txs[0].Category)
}

func TestParser_UnknownLayout(t *testing.T) {
	input := "Foo,Bar\n1,2\n"

	_, err := NewParser().Parse(strings.NewReader(input))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "DotDecimal", input: "45.10", want: 4510},
		{name: "CommaDecimal", input: "45,10", want: 4510},
		{name: "USThousands", input: "1,234.56", want: 123456},
		{name: "EuropeanThousands", input: "1.234,56", want: 123456},
		{name: "Negative", input: "-588,74", want: -58874},
		{name: "CurrencySymbol", input: "€ 12,50", want: 1250},
		{name: "BareThousands", input: "1,234", want: 123400},
		{name: "Integer", input: "7", want: 700},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseAmount("not a number")
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{desc: "STARBUCKS COFFEE 0042", want: "Food"},
		{desc: "Netflix.com subscription", want: "Entertainment"},
		{desc: "Monthly rent to landlord", want: "Housing"},
		{desc: "ACME PAYROLL", want: "Income"},
		{desc: "Mystery merchant", want: transaction.DefaultCategory},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Categorize(tc.desc))
		})
	}
}
