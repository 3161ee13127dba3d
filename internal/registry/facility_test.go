package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFacilityAssignsSequentialIDs(t *testing.T) {
	sim := New()

	for want := int64(1); want <= 5; want++ {
		got := sim.RegisterFacility(shelterA())
		assert.Equal(t, want, got)
	}
	assert.Equal(t, int64(5), sim.FacilityCount())
}

func TestRegisterFacilityStoresActiveRecord(t *testing.T) {
	sim := New()
	id := sim.RegisterFacility(shelterA())

	f, ok := sim.Facility(id)
	require.True(t, ok)
	assert.Equal(t, Facility{
		Name:        "Shelter A",
		Location:    "Downtown",
		MaxCapacity: 100,
		ContactInfo: "555-0100",
		IsActive:    true,
	}, f)
}

func TestFacilityNotFound(t *testing.T) {
	sim := New()

	_, ok := sim.Facility(42)
	assert.False(t, ok)
}

func TestUpdateFacilityStatus(t *testing.T) {
	sim := New()
	id := sim.RegisterFacility(shelterA())

	require.NoError(t, sim.UpdateFacilityStatus(id, false))
	f, _ := sim.Facility(id)
	assert.False(t, f.IsActive)

	require.NoError(t, sim.UpdateFacilityStatus(id, true))
	f, _ = sim.Facility(id)
	assert.True(t, f.IsActive)
}

func TestUpdateFacilityStatusUnknownFacility(t *testing.T) {
	sim := New()

	err := sim.UpdateFacilityStatus(7, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFacilityNotFound))
	assert.False(t, errors.Is(err, ErrOccupancyNotFound))

	code, ok := ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, code)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, int64(7), de.FacilityID)
}

func TestFacilityRecordIsACopy(t *testing.T) {
	sim := New()
	id := sim.RegisterFacility(shelterA())

	f, _ := sim.Facility(id)
	f.Name = "mutated"

	stored, _ := sim.Facility(id)
	assert.Equal(t, "Shelter A", stored.Name)
}
