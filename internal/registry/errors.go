package registry

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes domain failure conditions that share a wire code.
type ErrorKind string

const (
	// KindFacilityNotFound: the facility ID was never registered.
	KindFacilityNotFound ErrorKind = "FACILITY_NOT_FOUND"

	// KindOccupancyNotFound: no occupancy was ever reported for the facility.
	KindOccupancyNotFound ErrorKind = "OCCUPANCY_NOT_FOUND"
)

// CodeNotFound is the numeric contract error code for every not-found
// condition. Contract callers compare against this literal value.
const CodeNotFound int64 = 1

// DomainError is a data-condition failure returned by a contract operation.
//
// Code is the value placed on the wire; Kind lets typed callers tell apart
// conditions the contract reports with the same code.
type DomainError struct {
	Kind       ErrorKind
	Code       int64
	FacilityID int64
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s (code %d, facility=%d)", e.Kind, e.Code, e.FacilityID)
}

// Is matches DomainErrors by Kind, so errors.Is(err, ErrFacilityNotFound)
// works regardless of the facility ID carried.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinels for errors.Is.
var (
	ErrFacilityNotFound  = &DomainError{Kind: KindFacilityNotFound, Code: CodeNotFound}
	ErrOccupancyNotFound = &DomainError{Kind: KindOccupancyNotFound, Code: CodeNotFound}
)

func facilityNotFound(id int64) *DomainError {
	return &DomainError{Kind: KindFacilityNotFound, Code: CodeNotFound, FacilityID: id}
}

func occupancyNotFound(id int64) *DomainError {
	return &DomainError{Kind: KindOccupancyNotFound, Code: CodeNotFound, FacilityID: id}
}

// IsDomainError returns true if err is (or wraps) a DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ErrorCode extracts the wire code from a DomainError.
// The second result is false if err is not a DomainError.
func ErrorCode(err error) (int64, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return 0, false
}
