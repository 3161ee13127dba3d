package registry

// UpdateOccupancy records the current headcount for a facility, stamped with
// the current block height. The facility does not have to exist.
func (s *Simulator) UpdateOccupancy(facilityID, currentOccupants int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.occupancy[facilityID] = Occupancy{
		CurrentOccupants: currentOccupants,
		LastUpdated:      s.st.blockHeight,
	}
}

// Occupancy looks up the last reported headcount for a facility.
func (s *Simulator) Occupancy(facilityID int64) (Occupancy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.st.occupancy[facilityID]
	return o, ok
}

// AvailableCapacity returns maxCapacity - currentOccupants. The result is not
// clamped and is negative when a facility is over capacity.
//
// Both the facility and an occupancy report must exist; otherwise the error
// is ErrFacilityNotFound or ErrOccupancyNotFound (both wire code 1).
func (s *Simulator) AvailableCapacity(facilityID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.st.facilities[facilityID]
	if !ok {
		return 0, facilityNotFound(facilityID)
	}
	o, ok := s.st.occupancy[facilityID]
	if !ok {
		return 0, occupancyNotFound(facilityID)
	}
	return f.MaxCapacity - o.CurrentOccupants, nil
}
