package cmd

import (
	"fmt"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	"github.com/SscSPs/solar_backoffice/internal/offline/clockin"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	clockOutSince string

	punchLat      float64
	punchLng      float64
	punchAccuracy float64
	punchAddress  string
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Clock in or out",
}

var clockInCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app.Refresh(cmd.Context())
		app.Location.Set(punchLocation(cmd))
		return reportPunch(app.Producer.Slide(cmd.Context(), 1))
	},
}

var clockOutCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var since time.Time
		if clockOutSince != "" {
			t, err := time.Parse(time.RFC3339, clockOutSince)
			if err != nil {
				return fmt.Errorf("invalid --since, want RFC3339: %w", err)
			}
			since = t
		}
		app.Refresh(cmd.Context())
		app.Location.Set(punchLocation(cmd))
		app.Producer.Resume(since)
		return reportPunch(app.Producer.Slide(cmd.Context(), 1))
	},
}

// punchLocation builds the punch position from --lat/--lng, or nil when either is missing.
func punchLocation(cmd *cobra.Command) *domain.Location {
	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
		return nil
	}
	loc := &domain.Location{
		GeoPoint: domain.GeoPoint{Latitude: punchLat, Longitude: punchLng},
		Accuracy: punchAccuracy,
	}
	if punchAddress != "" {
		address := punchAddress
		loc.Address = &address
	}
	return loc
}

func reportPunch(outcome clockin.Outcome) error {
	if jsonOutput {
		return printJSON(map[string]any{"outcome": outcome, "status": app.Producer.Status()})
	}
	switch outcome {
	case clockin.OutcomeDelivered:
		color.Green("Punch recorded on the server (%s)", app.Producer.Status())
	case clockin.OutcomeQueued:
		color.Yellow("Offline: punch saved locally and will sync later (%s)", app.Producer.Status())
	case clockin.OutcomeDropped:
		return fmt.Errorf("punch could not be saved, offline storage is unavailable")
	case clockin.OutcomeOutsideSite:
		return fmt.Errorf("punch refused, you are outside the project site")
	default:
		fmt.Println("Nothing recorded")
	}
	return nil
}

func init() {
	clockOutCmd.Flags().StringVar(&clockOutSince, "since", "", "clock-in time (RFC3339) used to report the worked duration")
	for _, c := range []*cobra.Command{clockInCmd, clockOutCmd} {
		c.Flags().Float64Var(&punchLat, "lat", 0, "latitude of the punch in decimal degrees")
		c.Flags().Float64Var(&punchLng, "lng", 0, "longitude of the punch in decimal degrees")
		c.Flags().Float64Var(&punchAccuracy, "accuracy", 0, "reported GPS accuracy in meters")
		c.Flags().StringVar(&punchAddress, "address", "", "street address of the punch")
	}
	clockCmd.AddCommand(clockInCmd, clockOutCmd)
}
