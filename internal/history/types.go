package history

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
)

// Entry is one persisted calculation. It is also the flat record used by
// export and import.
type Entry struct {
	ID              string               `json:"id"`
	Timestamp       time.Time            `json:"timestamp"`
	Origin          string               `json:"origin"`
	Destination     string               `json:"destination"`
	DistanceKm      float64              `json:"distance"`
	TotalDistanceKm float64              `json:"totalDistance,omitempty"`
	Transport       string               `json:"transport"`
	TransportName   string               `json:"transportName,omitempty"`
	Passengers      int                  `json:"passengers,omitempty"`
	Frequency       int                  `json:"frequency,omitempty"`
	RoundTrip       bool                 `json:"roundTrip"`
	TotalEmissionKg float64              `json:"totalEmission"`
	ImpactLevel     greenops.ImpactLevel `json:"impactLevel,omitempty"`
}

// UnlabeledLocation stands in for an origin or destination the calculation
// was not given.
const UnlabeledLocation = "N/A"

// UnmarshalJSON accepts the id as a string or a number. Earlier releases
// wrote millisecond timestamps as ids.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		e.ID = ""
	case raw[0] == '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		e.ID = id
	default:
		var id json.Number
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		e.ID = id.String()
	}
	return nil
}

// EntryFromResult flattens a calculation result. ID and Timestamp are left
// for the store to assign. Missing route labels become UnlabeledLocation.
func EntryFromResult(r *engine.CalculationResult) Entry {
	return Entry{
		Origin:          labelOrUnlabeled(r.Origin),
		Destination:     labelOrUnlabeled(r.Destination),
		DistanceKm:      r.DistanceKm,
		TotalDistanceKm: r.TotalDistanceKm,
		Transport:       r.Transport,
		TransportName:   r.TransportName,
		Passengers:      r.Passengers,
		Frequency:       r.Frequency,
		RoundTrip:       r.RoundTrip,
		TotalEmissionKg: r.TotalEmissionKg,
		ImpactLevel:     r.Impact.Level,
	}
}

func labelOrUnlabeled(label string) string {
	if label == "" {
		return UnlabeledLocation
	}
	return label
}

// Criteria filters Search. Zero-valued fields are ignored; the emission
// bounds are pointers so that 0 can be used as a bound.
type Criteria struct {
	Origin      string
	Destination string
	Transport   string
	MinEmission *float64
	MaxEmission *float64
	Since       time.Time
	Until       time.Time
}

// Matches reports whether e satisfies every set criterion. Bounds are
// inclusive.
func (c Criteria) Matches(e Entry) bool {
	if c.Origin != "" && e.Origin != c.Origin {
		return false
	}
	if c.Destination != "" && e.Destination != c.Destination {
		return false
	}
	if c.Transport != "" && e.Transport != c.Transport {
		return false
	}
	if c.MinEmission != nil && e.TotalEmissionKg < *c.MinEmission {
		return false
	}
	if c.MaxEmission != nil && e.TotalEmissionKg > *c.MaxEmission {
		return false
	}
	if !c.Since.IsZero() && e.Timestamp.Before(c.Since) {
		return false
	}
	if !c.Until.IsZero() && e.Timestamp.After(c.Until) {
		return false
	}
	return true
}

// Stats summarizes the history.
type Stats struct {
	Count             int            `json:"totalCalculations"`
	TotalEmissionKg   float64        `json:"totalEmissions"`
	AverageEmissionKg float64        `json:"averageEmission"`
	TotalDistanceKm   float64        `json:"totalDistance"`
	MostUsedTransport string         `json:"mostUsedTransport,omitempty"`
	Distribution      map[string]int `json:"transportDistribution"`
}

// Comparison is the emission difference between two history entries.
// DifferenceKg is B minus A; MoreEfficient holds IndexA or IndexB.
type Comparison struct {
	IndexA            int     `json:"indexA"`
	IndexB            int     `json:"indexB"`
	A                 Entry   `json:"item1"`
	B                 Entry   `json:"item2"`
	DifferenceKg      float64 `json:"emissionDifference"`
	DifferencePercent float64 `json:"emissionDifferencePercent"`
	MoreEfficient     int     `json:"moreEfficientIndex"`
}
