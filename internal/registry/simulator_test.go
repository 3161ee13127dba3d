package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shelterA() FacilityParams {
	return FacilityParams{
		Name:        "Shelter A",
		Location:    "Downtown",
		MaxCapacity: 100,
		ContactInfo: "555-0100",
	}
}

func TestNewStartsEmpty(t *testing.T) {
	sim := New()

	assert.Equal(t, GenesisHeight, sim.BlockHeight())
	assert.Equal(t, int64(0), sim.FacilityCount())

	_, ok := sim.Facility(1)
	assert.False(t, ok)
	_, ok = sim.StaffMember(1)
	assert.False(t, ok)
}

func TestResetRestoresInitialCounters(t *testing.T) {
	sim := New()
	sim.RegisterFacility(shelterA())
	sim.RegisterFacility(shelterA())
	sim.RegisterStaff(StaffParams{Name: "Ana", Role: "nurse"})
	sim.UpdateOccupancy(1, 10)
	sim.UpdateResource(1, "water", 50)
	sim.AssignStaff(1, 1)

	sim.Reset()

	assert.Equal(t, int64(0), sim.FacilityCount())
	_, ok := sim.Facility(1)
	assert.False(t, ok)
	_, ok = sim.Occupancy(1)
	assert.False(t, ok)
	_, ok = sim.Resource(1, "water")
	assert.False(t, ok)
	_, ok = sim.StaffMember(1)
	assert.False(t, ok)
	assert.False(t, sim.IsStaffAssigned(1, 1))
	assert.Equal(t, GenesisHeight, sim.BlockHeight())

	// Counters restart at 1.
	assert.Equal(t, int64(1), sim.RegisterFacility(shelterA()))
	assert.Equal(t, int64(1), sim.RegisterStaff(StaffParams{Name: "Ben"}))
}

func TestInstancesAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.RegisterFacility(shelterA())

	assert.Equal(t, int64(1), a.FacilityCount())
	assert.Equal(t, int64(0), b.FacilityCount())
}

func TestViewIsReadOnly(t *testing.T) {
	sim := New()
	id := sim.RegisterFacility(shelterA())
	sim.UpdateOccupancy(id, 40)

	r := sim.View()

	_, isSim := r.(*Simulator)
	assert.False(t, isSim, "view must not expose the mutating simulator")

	f, ok := r.Facility(id)
	require.True(t, ok)
	assert.Equal(t, "Shelter A", f.Name)

	free, err := r.AvailableCapacity(id)
	require.NoError(t, err)
	assert.Equal(t, int64(60), free)
	assert.Equal(t, int64(1), r.FacilityCount())
	assert.Equal(t, GenesisHeight, r.BlockHeight())
}

func TestViewSeesLaterWrites(t *testing.T) {
	sim := New()
	r := sim.View()

	sim.AssignStaff(2, 3)
	assert.True(t, r.IsStaffAssigned(2, 3))

	sim.AddResources(2, "cots", 5)
	res, ok := r.Resource(2, "cots")
	require.True(t, ok)
	assert.Equal(t, int64(5), res.Quantity)
}

func TestConcurrentRegistrationAssignsUniqueIDs(t *testing.T) {
	sim := New()
	const n = 50

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- sim.RegisterFacility(shelterA())
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, int64(n), sim.FacilityCount())
}
