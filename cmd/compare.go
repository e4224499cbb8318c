package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/yield-advisor/internal/model"
)

var (
	compareDistrict string
	compareSeason   string
	compareArea     float64
	compareYear     int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank every known crop by predicted yield for a district and season",
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := model.ParseSeason(compareSeason)
		if err != nil {
			return err
		}

		env, err := initEnv(cfg, time.Now())
		if err != nil {
			return err
		}

		out, err := env.Engine.CompareCrops(cmd.Context(), compareDistrict, season, compareArea, compareYear)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareDistrict, "district", "", "district name, e.g. Gaya")
	compareCmd.Flags().StringVar(&compareSeason, "season", "kharif", "season: kharif or rabi")
	compareCmd.Flags().Float64Var(&compareArea, "area", 1, "cultivated area in hectares")
	compareCmd.Flags().IntVar(&compareYear, "year", 0, "target year (default current year)")
	_ = compareCmd.MarkFlagRequired("district")
	rootCmd.AddCommand(compareCmd)
}
