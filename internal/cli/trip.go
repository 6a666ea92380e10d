package cli

import (
	"context"
	"fmt"

	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/routes"
)

// tripFlags are the trip description flags shared by calc, compare and
// ranking.
type tripFlags struct {
	transport  string
	distance   float64
	from       string
	to         string
	passengers int
	frequency  int
	roundTrip  bool
}

func (f tripFlags) input() engine.CalculationInput {
	return engine.CalculationInput{
		Transport:   f.transport,
		DistanceKm:  f.distance,
		Passengers:  f.passengers,
		Frequency:   f.frequency,
		RoundTrip:   f.roundTrip,
		Origin:      f.from,
		Destination: f.to,
	}
}

// resolveTrip fills the distance of in from the route resolver when it is
// unset and both endpoints are given, and replaces known location IDs with
// their display names.
func (a *app) resolveTrip(ctx context.Context, in engine.CalculationInput) (engine.CalculationInput, error) {
	table := a.resolver.Table()

	if in.DistanceKm == 0 && in.Origin != "" && in.Destination != "" {
		km, source, ok := a.resolver.ResolveWithSource(in.Origin, in.Destination)
		if !ok {
			return in, fmt.Errorf("no route between %q and %q: pass --distance", in.Origin, in.Destination)
		}
		logger.Debug().
			Ctx(ctx).
			Str("origin", in.Origin).
			Str("destination", in.Destination).
			Float64("distance_km", km).
			Str("source", string(source)).
			Msg("distance resolved")
		in.DistanceKm = km
	}

	in.Origin = locationName(table, in.Origin)
	in.Destination = locationName(table, in.Destination)
	return in, nil
}

func locationName(table *routes.Table, id string) string {
	if loc, ok := table.Location(id); ok {
		return loc.Name
	}
	return id
}
