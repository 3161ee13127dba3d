package registry

import "slices"

// RegisterStaff stores a new active staff member and returns its ID.
// The certifications slice is copied.
func (s *Simulator) RegisterStaff(p StaffParams) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.st.nextStaffID
	s.st.staff[id] = StaffMember{
		Name:           p.Name,
		Role:           p.Role,
		Certifications: slices.Clone(p.Certifications),
		IsActive:       true,
	}
	s.st.nextStaffID++
	return id
}

// AssignStaff marks staffID as assigned to facilityID.
// Neither ID is checked for existence.
func (s *Simulator) AssignStaff(facilityID, staffID int64) {
	s.setAssignment(facilityID, staffID, true)
}

// UnassignStaff marks the pair as not assigned. The key is kept with value
// false rather than deleted.
func (s *Simulator) UnassignStaff(facilityID, staffID int64) {
	s.setAssignment(facilityID, staffID, false)
}

func (s *Simulator) setAssignment(facilityID, staffID int64, assigned bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.assignments[AssignmentKey{FacilityID: facilityID, StaffID: staffID}] = assigned
}

// StaffMember looks up a staff member. The returned certifications are a copy.
func (s *Simulator) StaffMember(id int64) (StaffMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.st.staff[id]
	if !ok {
		return StaffMember{}, false
	}
	return m.clone(), true
}

// IsStaffAssigned reports the assignment flag for the pair; pairs never
// assigned read as false.
func (s *Simulator) IsStaffAssigned(facilityID, staffID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.assignments[AssignmentKey{FacilityID: facilityID, StaffID: staffID}]
}

// assignment reports the stored flag and whether the key exists at all.
// Absent and explicit false both read as unassigned through the contract.
func (s *Simulator) assignment(facilityID, staffID int64) (assigned, stored bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assigned, stored = s.st.assignments[AssignmentKey{FacilityID: facilityID, StaffID: staffID}]
	return assigned, stored
}
