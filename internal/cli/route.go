package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoroute/internal/geo"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/routes"
)

func newRouteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "route", Short: "Route table and distance commands"}
	cmd.AddCommand(
		newRouteDistanceCmd(a), newRouteFromCmd(a), newRouteStatsCmd(a),
		newRouteCitiesCmd(a), newRouteNearestCmd(a),
	)
	return cmd
}

// routeDistance is the structured output of route distance.
type routeDistance struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	DistanceKm  float64       `json:"distance_km"`
	Source      routes.Source `json:"source"`
}

func newRouteDistanceCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "distance <origin> <destination>",
		Short:   "Show the distance between two locations",
		Example: `  ecoroute route distance sao_paulo rio_janeiro`,
		Args:    cobra.ExactArgs(2), //nolint:mnd // origin and destination
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			km, source, ok := a.resolver.ResolveWithSource(args[0], args[1])
			if !ok {
				return fmt.Errorf("no route between %q and %q", args[0], args[1])
			}
			rd := routeDistance{Origin: args[0], Destination: args[1], DistanceKm: km, Source: source}

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, rd, []routeDistance{rd}); ok {
				return renderErr
			}
			table := a.resolver.Table()
			_, err = fmt.Fprintf(out, "%s -> %s: %s (%s)\n",
				locationName(table, rd.Origin), locationName(table, rd.Destination),
				greenops.FormatDistance(rd.DistanceKm), rd.Source)
			return err
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newRouteFromCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "from <origin>",
		Short: "List the destinations with a known distance from a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			table := a.resolver.Table()
			if _, ok := table.Location(args[0]); !ok {
				return fmt.Errorf("unknown location %q", args[0])
			}
			dests := table.RoutesFrom(args[0])

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, dests, dests); ok {
				return renderErr
			}
			tw := newTabWriter(out)
			fmt.Fprintln(tw, "ID\tNAME\tDISTANCE")
			fmt.Fprintln(tw, "--\t----\t--------")
			for _, d := range dests {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, greenops.FormatDistance(d.DistanceKm))
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newRouteStatsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show route table coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			s := a.resolver.Table().Stats()
			hits, misses := a.resolver.CacheStats()

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, s, []routes.Stats{s}); ok {
				return renderErr
			}
			tw := newTabWriter(out)
			fmt.Fprintf(tw, "Locations:\t%d\n", s.TotalLocations)
			fmt.Fprintf(tw, "Routes:\t%d of %d pairs (%d%%)\n", s.TotalRoutes, s.PossibleCombinations, s.CoveragePercent)
			fmt.Fprintf(tw, "Shortest:\t%s\n", greenops.FormatDistance(s.MinDistanceKm))
			fmt.Fprintf(tw, "Longest:\t%s\n", greenops.FormatDistance(s.MaxDistanceKm))
			fmt.Fprintf(tw, "Average:\t%s\n", greenops.FormatDistance(s.AvgDistanceKm))
			fmt.Fprintf(tw, "Cache:\t%d hits, %d misses\n", hits, misses)
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newRouteCitiesCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "cities",
		Aliases: []string{"locations"},
		Short:   "List the known locations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			locs := a.resolver.Table().Locations()

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, locs, locs); ok {
				return renderErr
			}
			tw := newTabWriter(out)
			fmt.Fprintln(tw, "ID\tNAME\tLAT\tLNG")
			fmt.Fprintln(tw, "--\t----\t---\t---")
			for _, l := range locs {
				fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", l.ID, l.Name, l.Lat, l.Lng)
			}
			return tw.Flush()
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// nearestLocation is the structured output of route nearest.
type nearestLocation struct {
	routes.Location

	DistanceKm float64 `json:"distance_km"`
}

func newRouteNearestCmd(a *app) *cobra.Command {
	var (
		coord  geo.Coordinate
		radius float64
		output string
	)

	cmd := &cobra.Command{
		Use:     "nearest",
		Short:   "Find the known location closest to a coordinate",
		Example: `  ecoroute route nearest --lat -23.56 --lng -46.64 --radius 25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveFormat(output)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("radius") {
				radius = a.cfg.Routes.SearchRadiusKm
			}
			loc, km, err := a.resolver.Table().Nearest(coord, radius)
			if err != nil {
				return err
			}
			n := nearestLocation{Location: loc, DistanceKm: km}

			out := cmd.OutOrStdout()
			if ok, renderErr := renderStructured(out, format, n, []nearestLocation{n}); ok {
				return renderErr
			}
			_, err = fmt.Fprintf(out, "%s (%s) is %s away\n", n.Name, n.ID, greenops.FormatDistance(n.DistanceKm))
			return err
		},
	}

	cmd.Flags().Float64Var(&coord.Lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&coord.Lng, "lng", 0, "longitude in decimal degrees")
	cmd.Flags().Float64Var(&radius, "radius", 0, "search radius in km (default from config)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	addOutputFlag(cmd, &output)
	return cmd
}
