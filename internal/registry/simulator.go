package registry

import "sync"

// state is the complete mutable state of one simulated chain.
// It is replaced wholesale on Reset.
type state struct {
	facilities  map[int64]Facility
	occupancy   map[int64]Occupancy
	resources   map[ResourceKey]Resource
	staff       map[int64]StaffMember
	assignments map[AssignmentKey]bool

	nextFacilityID int64
	nextStaffID    int64
	blockHeight    int64
}

func newState() state {
	return state{
		facilities:     make(map[int64]Facility),
		occupancy:      make(map[int64]Occupancy),
		resources:      make(map[ResourceKey]Resource),
		staff:          make(map[int64]StaffMember),
		assignments:    make(map[AssignmentKey]bool),
		nextFacilityID: firstID,
		nextStaffID:    firstID,
		blockHeight:    GenesisHeight,
	}
}

// Simulator is an in-memory simulation of the facility contracts.
//
// Thread-safety: the whole state block is guarded by one RWMutex, so a
// Simulator may be shared. Tests should still prefer one instance each.
type Simulator struct {
	mu sync.RWMutex
	st state
}

// New creates an empty simulator with both ID counters at 1.
func New() *Simulator {
	return &Simulator{st: newState()}
}

// Reset discards all records and restores the initial counters.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = newState()
}

// BlockHeight returns the height used to stamp updates.
func (s *Simulator) BlockHeight() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.blockHeight
}

// Reader is the read-only capability over a Simulator.
// Every contract lookup is available; nothing can be mutated through it.
type Reader interface {
	BlockHeight() int64
	Facility(id int64) (Facility, bool)
	FacilityCount() int64
	Occupancy(facilityID int64) (Occupancy, bool)
	AvailableCapacity(facilityID int64) (int64, error)
	Resource(facilityID int64, resourceType string) (Resource, bool)
	StaffMember(id int64) (StaffMember, bool)
	IsStaffAssigned(facilityID, staffID int64) bool
}

// view hides the Simulator's mutators. It is unexported so a Reader cannot be
// asserted back into a *Simulator.
type view struct {
	sim *Simulator
}

// View returns a read-only handle on s.
func (s *Simulator) View() Reader {
	return view{sim: s}
}

func (v view) BlockHeight() int64                 { return v.sim.BlockHeight() }
func (v view) Facility(id int64) (Facility, bool) { return v.sim.Facility(id) }
func (v view) FacilityCount() int64               { return v.sim.FacilityCount() }
func (v view) Occupancy(facilityID int64) (Occupancy, bool) {
	return v.sim.Occupancy(facilityID)
}
func (v view) AvailableCapacity(facilityID int64) (int64, error) {
	return v.sim.AvailableCapacity(facilityID)
}
func (v view) Resource(facilityID int64, resourceType string) (Resource, bool) {
	return v.sim.Resource(facilityID, resourceType)
}
func (v view) StaffMember(id int64) (StaffMember, bool) { return v.sim.StaffMember(id) }
func (v view) IsStaffAssigned(facilityID, staffID int64) bool {
	return v.sim.IsStaffAssigned(facilityID, staffID)
}

var (
	_ Reader = (*Simulator)(nil)
	_ Reader = view{}
)
