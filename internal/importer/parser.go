// Package importer parses bank statement CSV exports into transaction
// batches. Column layouts are matched against known profiles, so files
// from different banks flow through the same pipeline.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/fintwin-app/fintwin/internal/encoding"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

// ErrNoProfile marks a file whose headers match no known layout.
var ErrNoProfile = fmt.Errorf("no matching statement format found")

// dateLayouts are tried in order per cell. Day-first before month-first:
// the ambiguous cases overlap only for days 1-12 and the exports seen so
// far are day-first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
}

// Parser reads one statement file and produces transaction params.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes, sniffs the delimiter and layout, and extracts rows.
// Footer lines, running-balance rows and unparseable lines are skipped
// rather than failing the whole file.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("normalizing encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = sniffDelimiter(string(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	return parseRows(profile, cols, rows[headerIdx+1:]), nil
}

// sniffDelimiter picks the rune that splits the first line into the most
// fields. Comma wins ties.
func sniffDelimiter(content string) rune {
	line, _, _ := strings.Cut(content, "\n")

	delim := ','
	best := strings.Count(line, ",")

	if n := strings.Count(line, ";"); n > best {
		delim, best = ';', n
	}

	if n := strings.Count(line, "\t"); n > best {
		delim = '\t'
	}

	return delim
}

// colIndex maps lowercased column names to their position in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile. Headers
// are not always the first row; some banks prepend account metadata.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) []transaction.CreateParams {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var txs []transaction.CreateParams

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			continue
		}

		amount, txType, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		txs = append(txs, transaction.CreateParams{
			Amount:         amount,
			Type:           txType,
			Category:       Categorize(desc),
			Description:    desc,
			RawDescription: desc,
			Date:           date,
		})
	}

	return txs
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func rowAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Type, bool) {
	switch p.AmountMode {
	case amountSingle:
		return signedAmount(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		return splitAmount(cellValue(row, cols[p.DebitCol]), cellValue(row, cols[p.CreditCol]))
	}

	return 0, "", false
}

// signedAmount maps one signed column to an absolute amount and a type.
func signedAmount(s string) (int64, transaction.Type, bool) {
	if s == "" {
		return 0, "", false
	}

	cents, err := ParseAmount(s)
	if err != nil || cents == 0 {
		return 0, "", false
	}

	if cents < 0 {
		return -cents, transaction.TypeExpense, true
	}

	return cents, transaction.TypeIncome, true
}

// splitAmount reads separate debit and credit cells. A non-empty debit
// wins when both are filled.
func splitAmount(debit, credit string) (int64, transaction.Type, bool) {
	if debit != "" {
		if cents, err := ParseAmount(debit); err == nil && cents != 0 {
			return abs(cents), transaction.TypeExpense, true
		}
	}

	if credit != "" {
		if cents, err := ParseAmount(credit); err == nil && cents != 0 {
			return abs(cents), transaction.TypeIncome, true
		}
	}

	return 0, "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
