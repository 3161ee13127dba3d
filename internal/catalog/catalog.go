package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/roach88/chainsim/internal/ir"
)

//go:embed contracts.cue
var contractsCUE string

// ArgType is the contract-level type of one positional argument.
type ArgType string

const (
	ArgString     ArgType = "string"
	ArgInt        ArgType = "int"
	ArgBool       ArgType = "bool"
	ArgStringList ArgType = "[string]"
)

// Accepts reports whether v is a valid value for the type.
func (t ArgType) Accepts(v ir.IRValue) bool {
	switch t {
	case ArgString:
		_, ok := v.(ir.IRString)
		return ok
	case ArgInt:
		_, ok := v.(ir.IRInt)
		return ok
	case ArgBool:
		_, ok := v.(ir.IRBool)
		return ok
	case ArgStringList:
		arr, ok := v.(ir.IRArray)
		if !ok {
			return false
		}
		for _, elem := range arr {
			if _, isStr := elem.(ir.IRString); !isStr {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Arg is one positional argument of an operation.
type Arg struct {
	Name string  `json:"name"`
	Type ArgType `json:"type"`
}

// Operation is one contract action.
type Operation struct {
	Contract string `json:"contract"`
	Name     string `json:"name"`
	ReadOnly bool   `json:"readonly"`
	Args     []Arg  `json:"args"`
}

// Action returns the "contract.operation" form.
func (op Operation) Action() string {
	return op.Contract + "." + op.Name
}

// Contract is a named group of operations.
type Contract struct {
	Name       string      `json:"name"`
	Purpose    string      `json:"purpose"`
	Operations []Operation `json:"operations"`
}

// Catalog is a compiled, immutable set of contracts.
type Catalog struct {
	contracts []Contract
	index     map[string]map[string]Operation
}

// Routing sentinels returned by Lookup.
var (
	ErrUnknownContract  = errors.New("unknown contract")
	ErrUnknownOperation = errors.New("unknown operation")
)

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Compile("contracts.cue", contractsCUE)
})

// Default returns the catalog compiled from the embedded contracts.cue.
// Compilation happens once per process.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

func newCatalog(contracts []Contract) (*Catalog, error) {
	c := &Catalog{
		contracts: contracts,
		index:     make(map[string]map[string]Operation, len(contracts)),
	}
	for _, ct := range contracts {
		if _, dup := c.index[ct.Name]; dup {
			return nil, fmt.Errorf("duplicate contract %q", ct.Name)
		}
		ops := make(map[string]Operation, len(ct.Operations))
		for _, op := range ct.Operations {
			ops[op.Name] = op
		}
		c.index[ct.Name] = ops
	}
	return c, nil
}

// Contracts returns the contracts in declaration order.
func (c *Catalog) Contracts() []Contract {
	out := make([]Contract, len(c.contracts))
	copy(out, c.contracts)
	return out
}

// Operations returns every operation of every contract, in declaration order.
func (c *Catalog) Operations() []Operation {
	var ops []Operation
	for _, ct := range c.contracts {
		ops = append(ops, ct.Operations...)
	}
	return ops
}

// Lookup resolves a contract and operation name by exact match.
// Returns ErrUnknownContract or ErrUnknownOperation (wrapped with the name).
func (c *Catalog) Lookup(contract, operation string) (Operation, error) {
	ops, ok := c.index[contract]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownContract, contract)
	}
	op, ok := ops[operation]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q in contract %q", ErrUnknownOperation, operation, contract)
	}
	return op, nil
}

// ArgumentError reports an argument list that does not fit an operation's
// signature. Index is -1 for arity mismatches.
type ArgumentError struct {
	Action   string
	Index    int
	Name     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: expected %s arguments, got %s", e.Action, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: argument %d (%s): expected %s, got %s",
		e.Action, e.Index, e.Name, e.Expected, e.Actual)
}

// IsArgumentError returns true if err is (or wraps) an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// Check validates args against the operation's signature: exact arity and
// per-position type.
func (op Operation) Check(args ir.IRArray) error {
	if len(args) != len(op.Args) {
		return &ArgumentError{
			Action:   op.Action(),
			Index:    -1,
			Expected: fmt.Sprintf("%d", len(op.Args)),
			Actual:   fmt.Sprintf("%d", len(args)),
		}
	}
	for i, a := range op.Args {
		if !a.Type.Accepts(args[i]) {
			return &ArgumentError{
				Action:   op.Action(),
				Index:    i,
				Name:     a.Name,
				Expected: string(a.Type),
				Actual:   ir.TypeName(args[i]),
			}
		}
	}
	return nil
}
