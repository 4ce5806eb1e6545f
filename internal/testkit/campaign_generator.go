package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"scorecard/domain/table"
	"scorecard/domain/variable"
)

// CampaignGeneratorConfig configures the synthetic campaign-response
// dataset used by tests and demos
type CampaignGeneratorConfig struct {
	RowCount     int     `json:"row_count"`
	MissingRate  float64 `json:"missing_rate"`
	NoiseStdDev  float64 `json:"noise_std_dev"`
	Seed         int64   `json:"seed"`
	IncludeNoise bool    `json:"include_noise"`
}

// DefaultCampaignConfig returns sensible defaults for campaign data generation
func DefaultCampaignConfig() CampaignGeneratorConfig {
	return CampaignGeneratorConfig{
		RowCount:     500,
		MissingRate:  0.05,
		NoiseStdDev:  0.5,
		Seed:         42,
		IncludeNoise: true,
	}
}

// CampaignDataGenerator generates a marketing-campaign response table
// with genuine signal: responders skew toward high income, low account
// age, the east region and the gold tier.
type CampaignDataGenerator struct {
	config CampaignGeneratorConfig
	rng    *rand.Rand
}

// NewCampaignDataGenerator creates a new campaign data generator
func NewCampaignDataGenerator(config CampaignGeneratorConfig) *CampaignDataGenerator {
	return &CampaignDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the raw table: income (numerical, higher is better),
// account_age_days (numerical, lower is better), region (unordered
// categorical), tier (ordered categorical) and a binary responded target.
func (g *CampaignDataGenerator) Generate() *table.Raw {
	n := g.config.RowCount
	income := make([]string, n)
	accountAge := make([]string, n)
	region := make([]string, n)
	tier := make([]string, n)
	responded := make([]string, n)

	regions := []string{"east", "west", "north"}
	tiers := []string{"bronze", "silver", "gold"}

	for i := 0; i < n; i++ {
		incomeVal := 30000 + g.rng.Float64()*90000
		ageVal := float64(g.rng.Intn(3000) + 30)
		regionVal := regions[g.rng.Intn(len(regions))]
		tierVal := tiers[g.rng.Intn(len(tiers))]

		// log-odds of responding, built from the planted signal
		logit := -2.0
		logit += (incomeVal - 75000) / 30000
		logit -= (ageVal - 1500) / 1500
		if regionVal == "east" {
			logit += 0.8
		}
		if tierVal == "gold" {
			logit += 0.6
		}
		if g.config.IncludeNoise {
			logit += g.rng.NormFloat64() * g.config.NoiseStdDev
		}

		income[i] = fmt.Sprintf("$%.2f", incomeVal)
		accountAge[i] = fmt.Sprintf("%.0f", ageVal)
		region[i] = regionVal
		tier[i] = tierVal
		if g.rng.Float64() < sigmoid(logit) {
			responded[i] = "yes"
		} else {
			responded[i] = "no"
		}

		if g.rng.Float64() < g.config.MissingRate {
			income[i] = ""
		}
		if g.rng.Float64() < g.config.MissingRate {
			region[i] = ""
		}
	}

	raw := table.NewRaw()
	raw.AddColumn("income", income)
	raw.AddColumn("account_age_days", accountAge)
	raw.AddColumn("region", region)
	raw.AddColumn("tier", tier)
	raw.AddColumn("responded", responded)
	return raw
}

// Config returns the matching analysis configuration for the generated table
func (g *CampaignDataGenerator) Config() *variable.AnalysisConfig {
	return &variable.AnalysisConfig{
		TargetVariable:       "responded",
		CategoricalVariables: []string{"region", "tier"},
		NumericalVariables:   []string{"income", "account_age_days"},
		VariableDetails: map[string]variable.Spec{
			"income":           variable.Numerical(variable.HigherIsBetter),
			"account_age_days": variable.Numerical(variable.LowerIsBetter),
			"region":           variable.UnorderedCategorical(),
			"tier":             variable.OrderedCategorical([]string{"bronze", "silver", "gold"}),
		},
		SourceIdentifier: "testkit_campaign",
	}
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
