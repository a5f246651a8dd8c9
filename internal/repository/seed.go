package repository

import (
	"context"
	"fmt"

	"hvac-finder/internal/model"

	"github.com/rs/zerolog"
)

type seedProvider struct {
	params model.ProviderParams
	zips   []string
}

var sampleProviders = []seedProvider{
	{
		params: model.ProviderParams{
			CompanyName: "Cool Air Solutions",
			Phone:       "217-555-0101",
			Email:       "service@coolair.example",
			Address:     model.Address{Street: "100 Industrial Blvd", City: "Springfield", State: "IL", ZipCode: "62704"},
			Website:     "https://coolair.example",
			Description: "Residential heating, cooling and ventilation across central Illinois.",
		},
		zips: []string{"62701", "62702", "62703", "62704", "62707"},
	},
	{
		params: model.ProviderParams{
			CompanyName: "HeatWave Comfort Systems",
			Phone:       "217-555-0202",
			Email:       "info@heatwave.example",
			Address:     model.Address{Street: "250 Commerce Dr", City: "Springfield", State: "IL", ZipCode: "62703"},
			Website:     "https://heatwave.example",
			Description: "Furnace and AC repair with round-the-clock emergency calls.",
		},
		zips: []string{"62702", "62703", "62704", "62711"},
	},
	{
		params: model.ProviderParams{
			CompanyName: "Windy City HVAC Pros",
			Phone:       "312-555-0303",
			Email:       "support@windycity.example",
			Address:     model.Address{Street: "500 Michigan Ave", City: "Chicago", State: "IL", ZipCode: "60601"},
			Website:     "https://windycity.example",
			Description: "Downtown Chicago installs, duct cleaning and air quality work.",
		},
		zips: []string{"60601", "60602", "60603", "60604", "60605", "60606"},
	},
	{
		params: model.ProviderParams{
			CompanyName: "Suburban Comfort Heating & Air",
			Phone:       "630-555-0404",
			Email:       "hello@suburbancomfort.example",
			Address:     model.Address{Street: "1200 Butterfield Rd", City: "Downers Grove", State: "IL", ZipCode: "60515"},
			Website:     "https://suburbancomfort.example",
			Description: "Western suburbs specialists. Free estimates on new systems.",
		},
		zips: []string{"60515", "60516", "60517", "60514", "60532"},
	},
	{
		params: model.ProviderParams{
			CompanyName: "Lone Star Air Conditioning",
			Phone:       "214-555-0505",
			Email:       "service@lonestar.example",
			Address:     model.Address{Street: "800 Elm St", City: "Dallas", State: "TX", ZipCode: "75201"},
			Website:     "https://lonestar.example",
			Description: "Dallas AC repair, heat pumps and seasonal maintenance plans.",
		},
		zips: []string{"75201", "75202", "75203", "75204", "75205", "75206"},
	},
}

// Seed inserts a small set of sample providers when dir is empty and
// returns how many were added.
func Seed(ctx context.Context, dir ProviderDirectory, logger zerolog.Logger) (int, error) {
	count, err := dir.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count providers: %w", err)
	}
	if count > 0 {
		logger.Info().Int("providers", count).Msg("directory already populated, skipping seed")
		return 0, nil
	}

	for _, sp := range sampleProviders {
		provider, err := model.NewProvider(sp.params)
		if err != nil {
			return 0, fmt.Errorf("failed to build sample provider %q: %w", sp.params.CompanyName, err)
		}
		for _, zip := range sp.zips {
			if err := provider.AddServiceArea(zip); err != nil {
				return 0, fmt.Errorf("failed to add service area %s: %w", zip, err)
			}
		}
		if err := dir.AddProvider(ctx, provider); err != nil {
			return 0, fmt.Errorf("failed to seed provider %q: %w", sp.params.CompanyName, err)
		}
	}

	logger.Info().Int("providers", len(sampleProviders)).Msg("sample providers seeded")

	return len(sampleProviders), nil
}
