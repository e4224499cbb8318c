package predict

import (
	"fmt"

	"github.com/sells-group/yield-advisor/internal/model"
)

// maxRecommendations caps the list; earlier entries win.
const maxRecommendations = 8

var seasonAdvice = map[model.Season][]string{
	model.SeasonKharif: {
		"Keep field drainage channels open to prevent waterlogging during monsoon rains",
		"Scout regularly for pests and fungal diseases that thrive in humid monsoon weather",
	},
	model.SeasonRabi: {
		"Schedule irrigation at critical growth stages since winter rainfall is scarce",
		"Protect the crop from frost on cold nights with light irrigation or smoke",
	},
}

var generalPractices = []string{
	"Use certified seed of a variety recommended for your district",
	"Follow balanced nutrient management based on crop stage",
	"Get the soil tested before sowing and correct deficiencies",
	"Adopt climate-smart practices such as residue retention and efficient water use",
}

// recommendations assembles advice in a fixed order: optimal conditions,
// factor warnings, season advice, general practices.
func recommendations(crop model.CropProfile, season model.Season, f model.Factors) []string {
	recs := make([]string, 0, len(crop.OptimalConditions)+3+len(seasonAdvice[season])+len(generalPractices))
	for _, c := range crop.OptimalConditions {
		recs = append(recs, fmt.Sprintf("Ensure %s for %s", c, crop.CropID))
	}
	if f.CropSuitability < 1 {
		recs = append(recs, fmt.Sprintf("%s is not among the district's leading crops; consider a better-suited crop or a locally adapted variety", crop.CropID))
	}
	if f.RegionalPerformance < 1 {
		recs = append(recs, "District yields run below average; invest in soil health and irrigation to close the gap")
	}
	if f.AreaEfficiency < 1 {
		recs = append(recs, "Small plots lose efficiency; consider pooling machinery and inputs with neighbouring farmers")
	}
	recs = append(recs, seasonAdvice[season]...)
	recs = append(recs, generalPractices...)

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
