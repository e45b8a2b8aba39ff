package whatif

import "fmt"

// prosCons builds the templated narrative for a simulated scenario.
func prosCons(scenario ScenarioType, delta, total float64, horizon int) (pros, cons []string) {
	switch scenario {
	case ScenarioCancelSubscription:
		if delta <= 0 {
			return nil, []string{"Nothing selected means nothing saved."}
		}

		return []string{
				fmt.Sprintf("Frees up %.2f every month.", delta),
				fmt.Sprintf("Worth %.2f after %d months if invested.", total, horizon),
			}, []string{
				"You lose access the day you cancel.",
				"Re-subscribing later may cost more than today's price.",
			}

	case ScenarioAddSubscription:
		return []string{
				"A predictable flat cost is easy to budget for.",
			}, []string{
				fmt.Sprintf("Adds %.2f of recurring spend every month.", -delta),
				fmt.Sprintf("That is %.2f over %d months.", -total, horizon),
			}

	case ScenarioAdjustBudget:
		if delta > 0 {
			return []string{
					fmt.Sprintf("A tighter limit frees about %.2f per month.", delta),
					"Budget pressure is the cheapest spending intervention there is.",
				}, []string{
					"Too tight a limit tends to get ignored within a month or two.",
				}
		}

		return []string{
				"A realistic limit you can hold beats an aspirational one you can't.",
			}, []string{
				fmt.Sprintf("Raising the limit adds up to %.2f of allowed spend per month.", -delta),
			}

	case ScenarioChangeIncome:
		if delta > 0 {
			return []string{
					fmt.Sprintf("An extra %.2f per month compounds to %.2f over %d months.", delta, total, horizon),
				}, []string{
					"New income has a habit of disappearing into new spending.",
				}
		}

		return []string{
				"Planning the drop now beats discovering it later.",
			}, []string{
				fmt.Sprintf("You will need to cover a %.2f monthly shortfall.", -delta),
			}

	case ScenarioSavingsGoal:
		return []string{
				"A fixed monthly contribution makes the goal date predictable.",
				"Paying yourself first is the habit most likely to stick.",
			}, []string{
				fmt.Sprintf("Ties up %.2f of disposable income every month.", -delta),
			}

	case ScenarioMajorPurchase:
		return []string{
				"Spreading the cost keeps your cash buffer intact.",
			}, []string{
				fmt.Sprintf("Commits you to %.2f per month for the financing period.", -delta),
				"Interest means paying more than the sticker price.",
			}

	case ScenarioCutCategory:
		if delta <= 0 {
			return nil, []string{"No recent spending in this category, so there is nothing to cut."}
		}

		return []string{
				fmt.Sprintf("Saves about %.2f per month without touching anything else.", delta),
				fmt.Sprintf("Adds up to %.2f over %d months.", total, horizon),
			}, []string{
				"Percentage cuts are easy to promise and hard to keep.",
			}

	default:
		return nil, nil
	}
}
