package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecoroute/internal/logging"
)

// BatchSummary aggregates the successful items of a batch.
type BatchSummary struct {
	Count           int     `json:"count"`
	Failed          int     `json:"failed"`
	TotalEmissionKg float64 `json:"total_emission_kg"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

// CalculateBatch calculates every input concurrently, bounded by the batch
// concurrency limit. Items are returned in input order; an invalid trip sets
// that item's Err and does not stop the others. The returned error is only
// set when ctx is cancelled.
func (c *Calculator) CalculateBatch(ctx context.Context, inputs []CalculationInput) ([]BatchItem, error) {
	log := logging.FromContext(ctx)
	items := make([]BatchItem, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.batchLimit)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := c.Calculate(gCtx, in)
			// Each goroutine owns its slot.
			items[i] = BatchItem{Index: i, Input: in, Result: result, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch calculation cancelled: %w", err)
	}

	summary := Summarize(items)
	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "calculate_batch").
		Int("count", summary.Count).
		Int("failed", summary.Failed).
		Float64("total_emission_kg", summary.TotalEmissionKg).
		Msg("batch calculation complete")

	return items, nil
}

// Summarize totals the successful items of a batch.
func Summarize(items []BatchItem) BatchSummary {
	var s BatchSummary
	for _, item := range items {
		s.Count++
		if item.Err != nil || item.Result == nil {
			s.Failed++
			continue
		}
		s.TotalEmissionKg += item.Result.ExactEmissionKg
		s.TotalDistanceKm += item.Result.TotalDistanceKm
	}
	s.TotalEmissionKg = roundTo(s.TotalEmissionKg, emissionDecimals)
	return s
}
