package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStaff(t *testing.T) {
	sim := New()

	id := sim.RegisterStaff(StaffParams{Name: "Ana", Role: "nurse", Certifications: []string{"CPR", "EMT"}})
	assert.Equal(t, int64(1), id)
	assert.Equal(t, int64(2), sim.RegisterStaff(StaffParams{Name: "Ben", Role: "cook"}))

	m, ok := sim.StaffMember(id)
	require.True(t, ok)
	assert.Equal(t, StaffMember{
		Name:           "Ana",
		Role:           "nurse",
		Certifications: []string{"CPR", "EMT"},
		IsActive:       true,
	}, m)
}

func TestStaffCertificationsAreCopied(t *testing.T) {
	sim := New()
	certs := []string{"CPR"}
	id := sim.RegisterStaff(StaffParams{Name: "Ana", Certifications: certs})

	certs[0] = "changed"
	m, _ := sim.StaffMember(id)
	assert.Equal(t, []string{"CPR"}, m.Certifications)

	m.Certifications[0] = "changed again"
	again, _ := sim.StaffMember(id)
	assert.Equal(t, []string{"CPR"}, again.Certifications)
}

func TestStaffIDsIndependentOfFacilityIDs(t *testing.T) {
	sim := New()
	sim.RegisterFacility(shelterA())
	sim.RegisterFacility(shelterA())

	assert.Equal(t, int64(1), sim.RegisterStaff(StaffParams{Name: "Ana"}))
}

func TestAssignmentToggle(t *testing.T) {
	sim := New()

	assert.False(t, sim.IsStaffAssigned(1, 1))

	sim.AssignStaff(1, 1)
	assert.True(t, sim.IsStaffAssigned(1, 1))
	assert.False(t, sim.IsStaffAssigned(1, 2))
	assert.False(t, sim.IsStaffAssigned(2, 1))

	sim.UnassignStaff(1, 1)
	assert.False(t, sim.IsStaffAssigned(1, 1))

	sim.AssignStaff(1, 1)
	assert.True(t, sim.IsStaffAssigned(1, 1))
}

func TestUnassignKeepsKey(t *testing.T) {
	sim := New()

	_, stored := sim.assignment(4, 5)
	assert.False(t, stored)

	sim.AssignStaff(4, 5)
	sim.UnassignStaff(4, 5)

	assigned, stored := sim.assignment(4, 5)
	assert.True(t, stored, "unassign must retain the key")
	assert.False(t, assigned)
}

func TestUnassignWithoutAssign(t *testing.T) {
	sim := New()
	sim.UnassignStaff(1, 1)

	_, stored := sim.assignment(1, 1)
	assert.True(t, stored)
	assert.False(t, sim.IsStaffAssigned(1, 1))
}
