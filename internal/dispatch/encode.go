package dispatch

import (
	"github.com/roach88/chainsim/internal/ir"
	"github.com/roach88/chainsim/internal/registry"
)

// Record encodings keep the kebab-case field names of the contract ABI.

func encodeFacility(f registry.Facility, ok bool) ir.IRValue {
	if !ok {
		return ir.IRNull{}
	}
	return ir.IRObject{
		"name":         ir.IRString(f.Name),
		"location":     ir.IRString(f.Location),
		"max-capacity": ir.IRInt(f.MaxCapacity),
		"contact-info": ir.IRString(f.ContactInfo),
		"is-active":    ir.IRBool(f.IsActive),
	}
}

func encodeOccupancy(o registry.Occupancy, ok bool) ir.IRValue {
	if !ok {
		return ir.IRNull{}
	}
	return ir.IRObject{
		"current-occupants": ir.IRInt(o.CurrentOccupants),
		"last-updated":      ir.IRInt(o.LastUpdated),
	}
}

func encodeResource(r registry.Resource, ok bool) ir.IRValue {
	if !ok {
		return ir.IRNull{}
	}
	return ir.IRObject{
		"quantity":     ir.IRInt(r.Quantity),
		"last-updated": ir.IRInt(r.LastUpdated),
	}
}

func encodeStaffMember(m registry.StaffMember, ok bool) ir.IRValue {
	if !ok {
		return ir.IRNull{}
	}
	return ir.IRObject{
		"name":           ir.IRString(m.Name),
		"role":           ir.IRString(m.Role),
		"certifications": ir.Strings(m.Certifications),
		"is-active":      ir.IRBool(m.IsActive),
	}
}

// Positional argument accessors. Args are checked against the catalog before
// a handler runs; a mismatch here panics and is recovered as a fault.

func intArg(args ir.IRArray, i int) int64 {
	return int64(args[i].(ir.IRInt))
}

func stringArg(args ir.IRArray, i int) string {
	return string(args[i].(ir.IRString))
}

func boolArg(args ir.IRArray, i int) bool {
	return bool(args[i].(ir.IRBool))
}

func stringsArg(args ir.IRArray, i int) []string {
	arr := args[i].(ir.IRArray)
	out := make([]string, len(arr))
	for j, v := range arr {
		out[j] = string(v.(ir.IRString))
	}
	return out
}
