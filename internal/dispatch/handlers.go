package dispatch

import (
	"github.com/roach88/chainsim/internal/ir"
	"github.com/roach88/chainsim/internal/registry"
)

// readFunc handles a lookup. It only ever receives the read capability.
type readFunc func(r registry.Reader, args ir.IRArray) (ir.IRValue, error)

// writeFunc handles a mutating operation.
type writeFunc func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error)

// handler holds exactly one of read or write.
type handler struct {
	read  readFunc
	write writeFunc
}

func (h handler) readOnly() bool {
	return h.read != nil
}

// handlerTable maps contract -> operation -> handler.
type handlerTable map[string]map[string]handler

func defaultHandlers() handlerTable {
	return handlerTable{
		"facility-registration": facilityHandlers(),
		"capacity-tracking":     capacityHandlers(),
		"resource-inventory":    inventoryHandlers(),
		"staff-certification":   staffHandlers(),
	}
}

// done is the value returned by operations that only acknowledge.
var done = ir.IRBool(true)

func facilityHandlers() map[string]handler {
	return map[string]handler{
		"register-facility": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			id := s.RegisterFacility(registry.FacilityParams{
				Name:        stringArg(args, 0),
				Location:    stringArg(args, 1),
				MaxCapacity: intArg(args, 2),
				ContactInfo: stringArg(args, 3),
			})
			return ir.IRInt(id), nil
		}},
		"update-facility-status": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			if err := s.UpdateFacilityStatus(intArg(args, 0), boolArg(args, 1)); err != nil {
				return nil, err
			}
			return done, nil
		}},
		"get-facility": {read: func(r registry.Reader, args ir.IRArray) (ir.IRValue, error) {
			return encodeFacility(r.Facility(intArg(args, 0))), nil
		}},
		"get-facility-count": {read: func(r registry.Reader, _ ir.IRArray) (ir.IRValue, error) {
			return ir.IRInt(r.FacilityCount()), nil
		}},
	}
}

func capacityHandlers() map[string]handler {
	return map[string]handler{
		"update-occupancy": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			s.UpdateOccupancy(intArg(args, 0), intArg(args, 1))
			return done, nil
		}},
		"get-occupancy": {read: func(r registry.Reader, args ir.IRArray) (ir.IRValue, error) {
			return encodeOccupancy(r.Occupancy(intArg(args, 0))), nil
		}},
		"get-available-capacity": {read: func(r registry.Reader, args ir.IRArray) (ir.IRValue, error) {
			free, err := r.AvailableCapacity(intArg(args, 0))
			if err != nil {
				return nil, err
			}
			return ir.IRInt(free), nil
		}},
	}
}

func inventoryHandlers() map[string]handler {
	return map[string]handler{
		"update-resource": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			s.UpdateResource(intArg(args, 0), stringArg(args, 1), intArg(args, 2))
			return done, nil
		}},
		"add-resources": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			s.AddResources(intArg(args, 0), stringArg(args, 1), intArg(args, 2))
			return done, nil
		}},
		"get-resource": {read: func(r registry.Reader, args ir.IRArray) (ir.IRValue, error) {
			return encodeResource(r.Resource(intArg(args, 0), stringArg(args, 1))), nil
		}},
	}
}

func staffHandlers() map[string]handler {
	return map[string]handler{
		"register-staff": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			id := s.RegisterStaff(registry.StaffParams{
				Name:           stringArg(args, 0),
				Role:           stringArg(args, 1),
				Certifications: stringsArg(args, 2),
			})
			return ir.IRInt(id), nil
		}},
		"assign-staff-to-facility": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			s.AssignStaff(intArg(args, 0), intArg(args, 1))
			return done, nil
		}},
		"unassign-staff-from-facility": {write: func(s *registry.Simulator, args ir.IRArray) (ir.IRValue, error) {
			s.UnassignStaff(intArg(args, 0), intArg(args, 1))
			return done, nil
		}},
		"get-staff-member": {read: func(r registry.Reader, args ir.IRArray) (ir.IRValue, error) {
			return encodeStaffMember(r.StaffMember(intArg(args, 0))), nil
		}},
		"is-staff-assigned": {read: func(r registry.Reader, args ir.IRArray) (ir.IRValue, error) {
			return ir.IRBool(r.IsStaffAssigned(intArg(args, 0), intArg(args, 1))), nil
		}},
	}
}
