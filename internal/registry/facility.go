package registry

// RegisterFacility stores a new active facility and returns its ID.
// IDs are assigned sequentially from 1 and never reused.
func (s *Simulator) RegisterFacility(p FacilityParams) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.st.nextFacilityID
	s.st.facilities[id] = Facility{
		Name:        p.Name,
		Location:    p.Location,
		MaxCapacity: p.MaxCapacity,
		ContactInfo: p.ContactInfo,
		IsActive:    true,
	}
	s.st.nextFacilityID++
	return id
}

// UpdateFacilityStatus overwrites the active flag of a registered facility.
// Returns ErrFacilityNotFound if id was never registered.
func (s *Simulator) UpdateFacilityStatus(id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.st.facilities[id]
	if !ok {
		return facilityNotFound(id)
	}
	f.IsActive = active
	s.st.facilities[id] = f
	return nil
}

// Facility looks up a facility. The bool is false if id was never registered.
func (s *Simulator) Facility(id int64) (Facility, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.st.facilities[id]
	return f, ok
}

// FacilityCount returns the number of facilities registered since the last reset.
func (s *Simulator) FacilityCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.nextFacilityID - firstID
}
