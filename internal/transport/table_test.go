package transport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table := Default()
	require.Equal(t, 8, table.Len())

	// Table order is the tie-break order and must stay fixed.
	assert.Equal(t, []string{
		IDBicycle, IDElectricCar, IDTrain, IDHybridCar,
		IDBus, IDPlane, IDMotorcycle, IDGasolineCar,
	}, table.IDs())
}

func TestLookup(t *testing.T) {
	table := Default()

	tests := []struct {
		id       string
		wantRate float64
		wantCat  Category
		wantOK   bool
	}{
		{IDBicycle, 0.0, CategoryNonMotorized, true},
		{IDElectricCar, 0.022, CategoryPrivateVehicle, true},
		{IDTrain, 0.035, CategoryPublicTransit, true},
		{IDHybridCar, 0.051, CategoryPrivateVehicle, true},
		{IDBus, 0.075, CategoryPublicTransit, true},
		{IDPlane, 0.123, CategoryAircraft, true},
		{IDMotorcycle, 0.130, CategoryPrivateVehicle, true},
		{IDGasolineCar, 0.148, CategoryPrivateVehicle, true},
		{"teleporter", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, ok := table.Lookup(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.InDelta(t, tt.wantRate, p.RateKgPerKm, 1e-9)
			assert.Equal(t, tt.wantCat, p.Category)
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.Icon)
		})
	}
}

func TestCleanerAlternative(t *testing.T) {
	table := Default()

	car, ok := table.Lookup(IDGasolineCar)
	require.True(t, ok)
	assert.Equal(t, IDElectricCar, car.CleanerAlternative)

	for _, id := range []string{IDBicycle, IDElectricCar, IDHybridCar, IDMotorcycle, IDBus} {
		p, _ := table.Lookup(id)
		assert.Empty(t, p.CleanerAlternative, id)
	}
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		profiles []Profile
		reason   string
	}{
		{"empty id", []Profile{{ID: "", RateKgPerKm: 1, Category: CategoryAircraft}}, "empty id"},
		{"duplicate id", []Profile{
			{ID: "a", RateKgPerKm: 1, Category: CategoryAircraft},
			{ID: "a", RateKgPerKm: 2, Category: CategoryAircraft},
		}, "duplicate id"},
		{"missing category", []Profile{{ID: "a", RateKgPerKm: 1}}, "no category"},
		{"negative rate", []Profile{{ID: "a", RateKgPerKm: -0.1, Category: CategoryAircraft}}, "rate"},
		{"nan rate", []Profile{{ID: "a", RateKgPerKm: math.NaN(), Category: CategoryAircraft}}, "rate"},
		{"unknown alternative", []Profile{
			{ID: "a", RateKgPerKm: 1, Category: CategoryAircraft, CleanerAlternative: "b"},
		}, "unknown cleaner alternative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.profiles)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestProfiles_ReturnsCopy(t *testing.T) {
	table := Default()
	profiles := table.Profiles()
	profiles[0].RateKgPerKm = 99

	p, _ := table.Lookup(IDBicycle)
	assert.Zero(t, p.RateKgPerKm)
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryPrivateVehicle.SharesEmission())
	assert.False(t, CategoryPublicTransit.SharesEmission())
	assert.False(t, CategoryAircraft.SharesEmission())
	assert.False(t, CategoryNonMotorized.SharesEmission())

	assert.False(t, CategoryUnknown.SharesEmission())
	assert.Equal(t, "unknown", CategoryUnknown.String())
	assert.Equal(t, "private_vehicle", CategoryPrivateVehicle.String())
	assert.Equal(t, "Category(42)", Category(42).String())
}

func TestCategory_TextRoundTrip(t *testing.T) {
	text, err := CategoryAircraft.MarshalText()
	require.NoError(t, err)

	var c Category
	require.NoError(t, c.UnmarshalText(text))
	assert.Equal(t, CategoryAircraft, c)

	require.Error(t, c.UnmarshalText([]byte("rocket")))
	require.Error(t, c.UnmarshalText([]byte("unknown")))
}

func TestPosition(t *testing.T) {
	table := Default()
	assert.Equal(t, 0, table.Position(IDBicycle))
	assert.Equal(t, 7, table.Position(IDGasolineCar))
	assert.Equal(t, -1, table.Position("unknown"))
}
