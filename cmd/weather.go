package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/yield-advisor/internal/weather"
)

var (
	weatherDistrict string
	weatherCrop     string
	weatherDays     int
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Weather series, forecasts and crop impact",
}

var weatherImpactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Score the last 30 days of district weather for a crop",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cfg, time.Now())
		if err != nil {
			return err
		}

		report, err := weather.Assess(cmd.Context(), env.Weather, env.Analyzer, weatherDistrict, weatherCrop)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

var weatherForecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print a synthetic forecast starting tomorrow",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cfg, time.Now())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), env.Weather.GetWeatherForecast(weatherDistrict, weatherDays))
	},
}

func init() {
	weatherCmd.PersistentFlags().StringVar(&weatherDistrict, "district", "", "district name, e.g. Patna")
	_ = weatherCmd.MarkPersistentFlagRequired("district")

	weatherImpactCmd.Flags().StringVar(&weatherCrop, "crop", "", "crop identifier, e.g. wheat")
	_ = weatherImpactCmd.MarkFlagRequired("crop")

	weatherForecastCmd.Flags().IntVar(&weatherDays, "days", weather.DefaultForecastDays, "number of days to forecast")

	weatherCmd.AddCommand(weatherImpactCmd, weatherForecastCmd)
	rootCmd.AddCommand(weatherCmd)
}
