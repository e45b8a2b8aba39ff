package importer

import (
	"strings"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

// categoryKeywords maps a category to the description substrings that
// assign it. Order matters: the first category with a hit wins, so more
// specific buckets sit above catch-all ones.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Food", []string{"restaurant", "cafe", "coffee", "pizza", "burger", "kfc", "mcdonald", "grocer", "supermarket", "food"}},
	{"Transport", []string{"uber", "taxi", "fuel", "petrol", "parking", "bus", "metro", "train", "transport"}},
	{"Utilities", []string{"electric", "water", "internet", "broadband", "mobile", "phone", "utility", "bill"}},
	{"Entertainment", []string{"netflix", "spotify", "cinema", "steam", "game", "concert"}},
	{"Health", []string{"pharmacy", "doctor", "dental", "hospital", "clinic", "gym"}},
	{"Housing", []string{"rent", "mortgage", "landlord"}},
	{"Travel", []string{"airline", "flight", "hotel", "airbnb", "booking"}},
	{"Shopping", []string{"amazon", "shop", "store", "mall", "purchase"}},
	{"Income", []string{"salary", "payroll", "wages", "dividend"}},
	{"Transfer", []string{"transfer", "sent to", "received from"}},
}

// Categorize assigns a category from the transaction description, falling
// back to the default bucket when nothing matches.
func Categorize(description string) string {
	desc := strings.ToLower(description)

	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(desc, kw) {
				return entry.category
			}
		}
	}

	return transaction.DefaultCategory
}
