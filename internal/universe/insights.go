package universe

import "fmt"

// insightsFor picks the templated narrative for a universe from its type
// and whether the replay actually came out ahead.
func insightsFor(u Universe) []string {
	ahead := u.PotentialSavings > 0
	amount := u.PotentialSavings

	switch u.Type {
	case TypePerfectBudget:
		if !ahead {
			return []string{
				"You stayed inside every budget over the last six months.",
				"Consider tightening a budget or two if you want a stretch goal.",
			}
		}

		return []string{
			fmt.Sprintf("Sticking to your budgets would have kept %.2f in your pocket.", amount),
			"Most of the overspend sits in one or two categories.",
			"Set a mid-month reminder for the category you break most often.",
		}

	case TypeNoImpulse:
		if !ahead {
			return []string{
				"Almost none of your spending looks impulsive. Well done.",
				"Keep weekend purchases deliberate and this stays true.",
			}
		}

		return []string{
			fmt.Sprintf("Skipping impulse purchases would have saved %.2f.", amount),
			"Small weekend buys add up faster than one-off splurges.",
			"Try a 24-hour rule before any unplanned purchase.",
		}

	case TypeInvestor:
		if !ahead {
			return []string{
				"You had no net savings to invest over this window.",
				"Free up a monthly surplus first, then investing starts to matter.",
			}
		}

		return []string{
			fmt.Sprintf("Investing your savings would have grown them by %.2f already.", amount),
			"Compounding rewards starting early far more than starting big.",
		}

	case TypeSubscriptionFree:
		if !ahead {
			return []string{
				"You carry no active paid subscriptions right now.",
				"Audit trials before they convert and it stays that way.",
			}
		}

		return []string{
			fmt.Sprintf("A subscription purge six months ago would be worth %.2f today.", amount),
			"Cancel the ones you have not opened in the last month.",
			"Annual plans are cheaper, but only for services you actually keep.",
		}

	case TypeSaver:
		if !ahead {
			return []string{
				"You already save more than the target rate. Keep going.",
				"Consider raising your personal target instead.",
			}
		}

		return []string{
			fmt.Sprintf("Hitting the savings target every month would add %.2f.", amount),
			"Automating a transfer on payday makes the target effortless.",
		}

	case TypeFrugal:
		if !ahead {
			return []string{
				"There was nothing to trim in this window.",
			}
		}

		return []string{
			fmt.Sprintf("A leaner version of the same lifestyle frees up %.2f.", amount),
			"Cheaper substitutes beat outright cuts for sticking power.",
			"Start with the category where the cut hurts least.",
		}

	default:
		return nil
	}
}
