package registry

import "slices"

// GenesisHeight is the block height every Simulator starts at.
// No operation advances it.
const GenesisHeight int64 = 1

// firstID is the first facility and staff ID handed out after a reset.
const firstID int64 = 1

// Facility is a registered capacity-bearing location.
type Facility struct {
	Name        string
	Location    string
	MaxCapacity int64
	ContactInfo string
	IsActive    bool
}

// FacilityParams are the inputs to RegisterFacility.
type FacilityParams struct {
	Name        string
	Location    string
	MaxCapacity int64
	ContactInfo string
}

// Occupancy is the most recently reported headcount for a facility.
type Occupancy struct {
	CurrentOccupants int64
	LastUpdated      int64
}

// Resource is a quantity of one resource type held at one facility.
// Quantity may be negative.
type Resource struct {
	Quantity    int64
	LastUpdated int64
}

// StaffMember is a registered person with a role and certifications.
type StaffMember struct {
	Name           string
	Role           string
	Certifications []string
	IsActive       bool
}

// StaffParams are the inputs to RegisterStaff.
type StaffParams struct {
	Name           string
	Role           string
	Certifications []string
}

// ResourceKey identifies a resource record.
type ResourceKey struct {
	FacilityID   int64
	ResourceType string
}

// AssignmentKey identifies a staff-to-facility assignment.
type AssignmentKey struct {
	FacilityID int64
	StaffID    int64
}

// clone returns a copy that shares no backing array with m.
func (m StaffMember) clone() StaffMember {
	m.Certifications = slices.Clone(m.Certifications)
	return m
}
