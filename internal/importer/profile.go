package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column, e.g. "Amount" holding "-10.00".
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one statement export format.
// Supporting another bank is adding a Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // amountSingle
	DebitCol   string // amountSplit
	CreditCol  string // amountSplit
}

// requiredCols are the headers that must all be present for a match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of formats tried during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "split",
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:       "generic",
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
	{
		Name:       "narration",
		DateCol:    "transaction date",
		DescCol:    "narration",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
	{
		Name:       "portuguese",
		DateCol:    "data",
		DescCol:    "descrição",
		AmountMode: amountSingle,
		AmountCol:  "montante",
	},
}
