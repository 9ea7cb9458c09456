package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"wildguard/internal/geo"
)

// negative coordinates look like flags, so they go after "--"
const measureExample = `  wildguard measure -- -1.4061 35.04 -2.648 37.26
  wildguard measure --json -- 0.35 37.58 -2.33 34.83`

func newMeasureCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "measure LAT1 LNG1 LAT2 LNG2",
		Short:   "Print great-circle distance and initial bearing between two points",
		Example: measureExample,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [4]float64
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				v[i] = f
			}
			from := geo.Coordinate{Lat: v[0], Lng: v[1]}
			to := geo.Coordinate{Lat: v[2], Lng: v[3]}
			for _, c := range []geo.Coordinate{from, to} {
				if !c.Valid() {
					return fmt.Errorf("coordinate %g,%g out of range", c.Lat, c.Lng)
				}
			}
			d := geo.Measure(from, to)
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"from":        from,
					"to":          to,
					"distance_km": d.DistanceKm,
					"bearing_deg": d.BearingDeg,
					"compass":     geo.CompassPoint(d.BearingDeg),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n%s\n", from, to, d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
