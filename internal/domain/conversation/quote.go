package conversation

import "github.com/shopspring/decimal"

// Quote holds the coverage and premium figures derived once from age and
// annual income. Values carry full precision; rounding happens at rendering.
type Quote struct {
	YearsOfCoverage     int
	RecommendedCoverage int64
	PremiumRate         int64
	AnnualPremium       decimal.Decimal
	MonthlyPremium      decimal.Decimal
}

const minimumCoverage = 300000

// ComputeQuote maps {age, annual income} to a coverage recommendation.
// The premium rate is RM per RM1,000 of coverage per year, by age bracket.
func ComputeQuote(age int, annualIncome int64) Quote {
	years := 60 - age
	if years < 0 {
		years = 0
	}

	coverage := annualIncome * 10
	if coverage < minimumCoverage {
		coverage = minimumCoverage
	}

	var rate int64
	switch {
	case age <= 30:
		rate = 6
	case age <= 40:
		rate = 8
	case age <= 50:
		rate = 10
	default:
		rate = 12
	}

	annual := decimal.NewFromInt(coverage).
		Div(decimal.NewFromInt(1000)).
		Mul(decimal.NewFromInt(rate))

	return Quote{
		YearsOfCoverage:     years,
		RecommendedCoverage: coverage,
		PremiumRate:         rate,
		AnnualPremium:       annual,
		MonthlyPremium:      annual.Div(decimal.NewFromInt(12)),
	}
}
