package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dpe-reader/internal/grade"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Classify consumption or emission values on the DPE scales",
	Long: `Grade prints the letter that a primary energy consumption
(kWh/m²/year) or a greenhouse-gas emission (kg CO₂/m²/year) falls into,
together with the bounds of that letter.`,
	Args: cobra.NoArgs,
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().Float64("energy", 0, "primary energy consumption in kWh/m²/year")
	gradeCmd.Flags().Float64("climate", 0, "greenhouse-gas emission in kg CO₂/m²/year")

	rootCmd.AddCommand(gradeCmd)
}

func runGrade(cmd *cobra.Command, args []string) error {
	energySet := cmd.Flags().Changed("energy")
	climateSet := cmd.Flags().Changed("climate")
	if !energySet && !climateSet {
		return fmt.Errorf("provide --energy, --climate, or both")
	}

	w := cmd.OutOrStdout()
	if energySet {
		v, _ := cmd.Flags().GetFloat64("energy")
		writeGrade(w, grade.Energy, v)
	}
	if climateSet {
		v, _ := cmd.Flags().GetFloat64("climate")
		writeGrade(w, grade.Climate, v)
	}
	return nil
}

// writeGrade prints one line such as "energie 262.4 kWh/m²/an: E [250, 330)".
func writeGrade(w io.Writer, s grade.Scale, v float64) {
	g := s.Classify(v)
	lo, hi, _ := s.Band(g)
	upper := fmt.Sprintf("%g)", hi)
	if math.IsInf(hi, 1) {
		upper = "+∞)"
	}
	fmt.Fprintf(w, "%s %g %s: %s [%g, %s\n", s.Name, v, s.Unit, g, lo, upper)
}
