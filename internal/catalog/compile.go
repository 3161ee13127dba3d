package catalog

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError represents a catalog compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compile parses CUE source into a Catalog.
// filename is only used for error positions.
func Compile(filename, src string) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	contractsVal := v.LookupPath(cue.ParsePath("contract"))
	if !contractsVal.Exists() {
		return nil, &CompileError{
			Field:   "contract",
			Message: "at least one contract is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := contractsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var contracts []Contract
	for iter.Next() {
		ct, err := compileContract(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, ct)
	}

	return newCatalog(contracts)
}

// compileContract parses one contract struct.
func compileContract(name string, v cue.Value) (Contract, error) {
	ct := Contract{Name: name}

	purposeVal := v.LookupPath(cue.ParsePath("purpose"))
	if !purposeVal.Exists() {
		return ct, &CompileError{
			Field:   "contract." + name + ".purpose",
			Message: "purpose is required",
			Pos:     v.Pos(),
		}
	}
	purpose, err := purposeVal.String()
	if err != nil {
		return ct, formatCUEError(err)
	}
	ct.Purpose = purpose

	actionVal := v.LookupPath(cue.ParsePath("action"))
	if !actionVal.Exists() {
		return ct, &CompileError{
			Field:   "contract." + name + ".action",
			Message: "at least one action is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := actionVal.Fields()
	if err != nil {
		return ct, formatCUEError(err)
	}
	for iter.Next() {
		op, err := compileOperation(name, iter.Label(), iter.Value())
		if err != nil {
			return ct, err
		}
		ct.Operations = append(ct.Operations, op)
	}

	if len(ct.Operations) == 0 {
		return ct, &CompileError{
			Field:   "contract." + name + ".action",
			Message: "at least one action is required",
			Pos:     v.Pos(),
		}
	}
	return ct, nil
}

// compileOperation parses one action: its readonly flag and argument list.
func compileOperation(contract, name string, v cue.Value) (Operation, error) {
	op := Operation{Contract: contract, Name: name}
	field := "contract." + contract + ".action." + name

	roVal := v.LookupPath(cue.ParsePath("readonly"))
	if roVal.Exists() {
		ro, err := roVal.Bool()
		if err != nil {
			return op, formatCUEError(err)
		}
		op.ReadOnly = ro
	}

	argsVal := v.LookupPath(cue.ParsePath("args"))
	if !argsVal.Exists() {
		return op, &CompileError{
			Field:   field + ".args",
			Message: "args list is required (use [] for none)",
			Pos:     v.Pos(),
		}
	}

	argsIter, err := argsVal.List()
	if err != nil {
		return op, formatCUEError(err)
	}

	seen := make(map[string]bool)
	for argsIter.Next() {
		argVal := argsIter.Value()

		nameVal := argVal.LookupPath(cue.ParsePath("name"))
		if !nameVal.Exists() {
			return op, &CompileError{Field: field + ".args", Message: "argument name is required", Pos: argVal.Pos()}
		}
		argName, err := nameVal.String()
		if err != nil {
			return op, formatCUEError(err)
		}
		if seen[argName] {
			return op, &CompileError{
				Field:   field + ".args",
				Message: fmt.Sprintf("duplicate argument name %q", argName),
				Pos:     argVal.Pos(),
			}
		}
		seen[argName] = true

		typeVal := argVal.LookupPath(cue.ParsePath("type"))
		if !typeVal.Exists() {
			return op, &CompileError{Field: field + ".args." + argName, Message: "argument type is required", Pos: argVal.Pos()}
		}
		argType, err := extractArgType(typeVal)
		if err != nil {
			return op, err
		}

		op.Args = append(op.Args, Arg{Name: argName, Type: argType})
	}

	return op, nil
}

// extractArgType maps a CUE type kind to an ArgType.
func extractArgType(v cue.Value) (ArgType, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return ArgString, nil
	case cue.IntKind:
		return ArgInt, nil
	case cue.BoolKind:
		return ArgBool, nil
	case cue.ListKind:
		return ArgStringList, nil
	case cue.FloatKind, cue.NumberKind:
		return "", &CompileError{
			Field:   "type",
			Message: "float types are forbidden - use int instead",
			Pos:     v.Pos(),
		}
	default:
		return "", &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
