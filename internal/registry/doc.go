// Package registry implements the typed state machine behind the simulated
// facility contracts.
//
// A Simulator holds four independent keyed stores (facilities, occupancy,
// resource quantities, staff) plus the staff-to-facility assignment set, the
// two ID counters and the block height. Every operation runs to completion
// under one lock; nothing blocks, nothing is persisted.
//
// There is no package-level instance. Construct one Simulator per test
// context:
//
//	sim := registry.New()
//	id := sim.RegisterFacility(registry.FacilityParams{Name: "Shelter A", MaxCapacity: 100})
//	sim.UpdateOccupancy(id, 40)
//	free, _ := sim.AvailableCapacity(id) // 60
//
// Mutating methods live on *Simulator. Read-only callers should receive the
// Reader returned by View, which exposes lookups only.
package registry
