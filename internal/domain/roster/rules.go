package roster

import (
	"fmt"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

// CountTier caps how many riders priced at or above Threshold a roster may hold.
type CountTier struct {
	Threshold int
	MaxRiders int
}

// BudgetTier caps the combined price of riders priced at or above Threshold.
type BudgetTier struct {
	Threshold int
	Cap       int
}

// Rules stores roster validation parameters for one division.
type Rules struct {
	TeamSize    int
	BudgetCap   int
	CountTiers  []CountTier
	BudgetTiers []BudgetTier
}

// RulesFor returns the active ruleset for a division. The men's game limits
// how many premium riders a roster holds; the women's game caps the combined
// spend on premium riders instead.
func RulesFor(division game.Division) Rules {
	if division == game.DivisionWomen {
		return Rules{
			TeamSize:    15,
			BudgetCap:   150,
			BudgetTiers: []BudgetTier{{Threshold: 20, Cap: 100}},
		}
	}

	return Rules{
		TeamSize:   25,
		BudgetCap:  150,
		CountTiers: []CountTier{{Threshold: 18, MaxRiders: 3}, {Threshold: 24, MaxRiders: 1}},
	}
}

// Verdict is the outcome of validating a roster. Errors flip IsValid;
// warnings never do.
type Verdict struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate checks a roster against rules using priceByRider to resolve
// prices. Rider names absent from the map count as price 0 rather than
// aborting, so a roster referencing retired riders still gets a full verdict.
// Every rule is evaluated independently and all failures accumulate.
func Validate(riderNames []string, priceByRider map[string]int, rules Rules) Verdict {
	if len(riderNames) == 0 {
		return Verdict{
			IsValid:  false,
			Errors:   []string{"No riders selected"},
			Warnings: []string{},
		}
	}

	verdict := Verdict{
		Errors:   []string{},
		Warnings: []string{},
	}

	seen := make(map[string]int, len(riderNames))
	totalPrice := 0
	tierCounts := make([]int, len(rules.CountTiers))
	tierSums := make([]int, len(rules.BudgetTiers))

	for _, name := range riderNames {
		seen[name]++
		if seen[name] == 2 {
			verdict.Warnings = append(verdict.Warnings, fmt.Sprintf("Duplicate rider: %s", name))
		}

		price, known := priceByRider[name]
		if !known {
			verdict.Warnings = append(verdict.Warnings, fmt.Sprintf("Unknown rider: %s", name))
		}

		totalPrice += price
		for i, tier := range rules.CountTiers {
			if price >= tier.Threshold {
				tierCounts[i]++
			}
		}
		for i, tier := range rules.BudgetTiers {
			if price >= tier.Threshold {
				tierSums[i] += price
			}
		}
	}

	// Roster size counts list entries, duplicates included.
	if len(riderNames) != rules.TeamSize {
		verdict.Errors = append(verdict.Errors,
			fmt.Sprintf("Must have exactly %d riders (currently %d)", rules.TeamSize, len(riderNames)))
	}

	if totalPrice > rules.BudgetCap {
		verdict.Errors = append(verdict.Errors,
			fmt.Sprintf("Budget exceeded: %d/%d points", totalPrice, rules.BudgetCap))
	}

	for i, tier := range rules.CountTiers {
		if tierCounts[i] > tier.MaxRiders {
			verdict.Errors = append(verdict.Errors,
				fmt.Sprintf("Too many riders ≥%d points: %d/%d max", tier.Threshold, tierCounts[i], tier.MaxRiders))
		}
	}

	for i, tier := range rules.BudgetTiers {
		if tierSums[i] > tier.Cap {
			verdict.Errors = append(verdict.Errors,
				fmt.Sprintf("High-value budget exceeded: %d/%d points for riders ≥%d points", tierSums[i], tier.Cap, tier.Threshold))
		}
	}

	verdict.IsValid = len(verdict.Errors) == 0

	return verdict
}
