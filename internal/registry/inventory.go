package registry

// UpdateResource overwrites the absolute quantity of a resource at a facility.
func (s *Simulator) UpdateResource(facilityID int64, resourceType string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.resources[ResourceKey{FacilityID: facilityID, ResourceType: resourceType}] = Resource{
		Quantity:    quantity,
		LastUpdated: s.st.blockHeight,
	}
}

// AddResources adds delta to the stored quantity, creating the record with
// quantity=delta if it does not exist yet.
func (s *Simulator) AddResources(facilityID int64, resourceType string, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ResourceKey{FacilityID: facilityID, ResourceType: resourceType}
	r := s.st.resources[key] // zero value when absent
	s.st.resources[key] = Resource{
		Quantity:    r.Quantity + delta,
		LastUpdated: s.st.blockHeight,
	}
}

// Resource looks up a resource record by (facility, type).
func (s *Simulator) Resource(facilityID int64, resourceType string) (Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.st.resources[ResourceKey{FacilityID: facilityID, ResourceType: resourceType}]
	return r, ok
}
