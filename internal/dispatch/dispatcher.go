package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/chainsim/internal/catalog"
	"github.com/roach88/chainsim/internal/ir"
	"github.com/roach88/chainsim/internal/registry"
)

// Recorder receives every dispatched call with its result.
// *journal.Store satisfies it.
type Recorder interface {
	WriteCall(ctx context.Context, call ir.Call) error
}

// Dispatcher routes dynamic calls to a Simulator.
//
// Thread-safety: Call, CallReadOnly and Reset are safe for concurrent use.
// Ordering between concurrent calls is whatever the simulator lock admits;
// seq reflects the order calls entered the dispatcher.
type Dispatcher struct {
	sim      *registry.Simulator
	catalog  *catalog.Catalog
	handlers handlerTable

	recorder Recorder
	metrics  *Metrics
	logger   *slog.Logger
	sessions SessionGenerator

	clock          *Clock
	session        string
	strictReadOnly bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCatalog replaces the embedded contract catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(d *Dispatcher) { d.catalog = c }
}

// WithRecorder journals every call to r.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithMetrics counts calls and resets in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithSessionGenerator sets how the session token is produced.
func WithSessionGenerator(g SessionGenerator) Option {
	return func(d *Dispatcher) { d.sessions = g }
}

// WithStrictReadOnly rejects mutating operations on the read-only path.
func WithStrictReadOnly(strict bool) Option {
	return func(d *Dispatcher) { d.strictReadOnly = strict }
}

// New creates a Dispatcher over sim.
//
// Returns an error if the catalog cannot be compiled or if catalog and
// handlers disagree on the set of operations or their read-only flags.
func New(sim *registry.Simulator, opts ...Option) (*Dispatcher, error) {
	if sim == nil {
		return nil, errors.New("dispatch: simulator is required")
	}
	d := &Dispatcher{
		sim:      sim,
		handlers: defaultHandlers(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessions: UUIDv7Generator{},
		clock:    NewClock(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("dispatch: load catalog: %w", err)
		}
		d.catalog = c
	}
	if err := verifyHandlers(d.catalog, d.handlers); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	d.session = d.sessions.Generate()
	return d, nil
}

// verifyHandlers checks that every catalog operation has a handler of the
// matching kind and that no handler is missing from the catalog.
func verifyHandlers(c *catalog.Catalog, handlers handlerTable) error {
	seen := 0
	for _, op := range c.Operations() {
		h, ok := handlers[op.Contract][op.Name]
		if !ok {
			return fmt.Errorf("no handler for %s", op.Action())
		}
		if h.readOnly() != op.ReadOnly {
			return fmt.Errorf("%s: catalog readonly=%t, handler readonly=%t",
				op.Action(), op.ReadOnly, h.readOnly())
		}
		seen++
	}
	total := 0
	for _, ops := range handlers {
		total += len(ops)
	}
	if total != seen {
		return fmt.Errorf("%d handlers have no catalog entry", total-seen)
	}
	return nil
}

// Session returns the token journal entries are tagged with.
func (d *Dispatcher) Session() string {
	return d.session
}

// Catalog returns the contract catalog used for routing.
func (d *Dispatcher) Catalog() *catalog.Catalog {
	return d.catalog
}

// Seq returns the seq of the most recent call.
func (d *Dispatcher) Seq() int64 {
	return d.clock.Current()
}

// Simulator returns the underlying simulator.
func (d *Dispatcher) Simulator() *registry.Simulator {
	return d.sim
}

// Call dispatches a state-changing (or any) operation.
func (d *Dispatcher) Call(ctx context.Context, contract, operation string, args ir.IRArray) ir.Result {
	return d.invoke(ctx, contract, operation, args, false)
}

// CallReadOnly dispatches through the read-only entry point.
func (d *Dispatcher) CallReadOnly(ctx context.Context, contract, operation string, args ir.IRArray) ir.Result {
	return d.invoke(ctx, contract, operation, args, true)
}

// Reset returns the simulator to its initial state. The seq clock and the
// journal are not reset.
func (d *Dispatcher) Reset() {
	d.sim.Reset()
	d.metrics.observeReset()
	d.logger.Debug("simulator reset", "session", d.session, "seq", d.clock.Current())
}

func (d *Dispatcher) invoke(ctx context.Context, contract, operation string, args ir.IRArray, readOnly bool) ir.Result {
	seq := d.clock.Next()
	if args == nil {
		args = ir.IRArray{}
	}

	result, outcome := d.execute(contract, operation, args, readOnly)
	d.metrics.observeCall(contract, operation, outcome)

	d.logger.Debug("contract call",
		"seq", seq,
		"contract", contract,
		"operation", operation,
		"read_only", readOnly,
		"outcome", outcome,
	)

	if d.recorder != nil {
		call := ir.Call{
			Seq:       seq,
			Session:   d.session,
			Contract:  contract,
			Operation: operation,
			ReadOnly:  readOnly,
			Args:      args,
			Result:    result,
		}
		if err := d.recorder.WriteCall(ctx, call); err != nil {
			d.logger.Warn("journal write failed",
				"seq", seq,
				"action", call.Action(),
				"error", err,
			)
		}
	}
	return result
}

func (d *Dispatcher) execute(contract, operation string, args ir.IRArray, readOnly bool) (ir.Result, string) {
	op, err := d.catalog.Lookup(contract, operation)
	if err != nil {
		re := routingError(err, contract, operation)
		return ir.Fail(ir.IRString(re.Message())), OutcomeRouting
	}
	h := d.handlers[op.Contract][op.Name]

	if readOnly && !op.ReadOnly && d.strictReadOnly {
		re := &RoutingError{Code: ErrCodeNotReadOnly, Contract: contract, Operation: operation}
		return ir.Fail(ir.IRString(re.Message())), OutcomeRouting
	}

	if err := op.Check(args); err != nil {
		return ir.Fail(ir.IRString(err.Error())), OutcomeFault
	}

	value, err := d.run(op, h, args)
	if err != nil {
		if code, ok := registry.ErrorCode(err); ok {
			return ir.Fail(ir.IRInt(code)), OutcomeError
		}
		return ir.Fail(ir.IRString(err.Error())), OutcomeFault
	}
	return ir.Ok(value), OutcomeOK
}

// run invokes the handler, converting a panic into a *Fault.
func (d *Dispatcher) run(op catalog.Operation, h handler, args ir.IRArray) (value ir.IRValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Fault{Action: op.Action(), Value: r}
			d.logger.Warn("handler fault recovered", "action", op.Action(), "fault", err)
		}
	}()
	if h.read != nil {
		return h.read(d.sim.View(), args)
	}
	return h.write(d.sim, args)
}

func routingError(err error, contract, operation string) *RoutingError {
	code := ErrCodeUnknownOperation
	if errors.Is(err, catalog.ErrUnknownContract) {
		code = ErrCodeUnknownContract
	}
	return &RoutingError{Code: code, Contract: contract, Operation: operation}
}
