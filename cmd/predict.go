package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/yield-advisor/internal/model"
)

var (
	predictCrop            string
	predictDistrict        string
	predictSeason          string
	predictArea            float64
	predictYear            int
	predictHistoricalYield float64
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the yield of one crop in a district and season",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cfg, time.Now())
		if err != nil {
			return err
		}

		req := model.PredictionRequest{
			CropID:       predictCrop,
			DistrictID:   predictDistrict,
			Season:       model.Season(predictSeason),
			AreaHectares: predictArea,
			Year:         predictYear,
		}
		if cmd.Flags().Changed("historical-yield") {
			req.HistoricalYield = &predictHistoricalYield
		}

		res, err := env.Engine.PredictYield(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictCrop, "crop", "", "crop identifier, e.g. rice")
	predictCmd.Flags().StringVar(&predictDistrict, "district", "", "district name, e.g. Patna")
	predictCmd.Flags().StringVar(&predictSeason, "season", "kharif", "season: kharif or rabi")
	predictCmd.Flags().Float64Var(&predictArea, "area", 1, "cultivated area in hectares")
	predictCmd.Flags().IntVar(&predictYear, "year", 0, "target year (default current year)")
	predictCmd.Flags().Float64Var(&predictHistoricalYield, "historical-yield", 0, "farmer-reported past yield in kg/ha, forwarded to the backend")
	_ = predictCmd.MarkFlagRequired("crop")
	_ = predictCmd.MarkFlagRequired("district")
	rootCmd.AddCommand(predictCmd)
}
