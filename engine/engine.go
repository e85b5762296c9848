// Package engine wires together a single proof-search run: a fresh symbol
// table, a term flag pool (held on the Engine; no other package is handed
// it), the multiplier pool the saturation loop draws its contexts from, a
// structured logger, a run ID, and the saturation loop itself
// (package saturate). It is the one place all of those pieces are
// constructed and handed to each other, so no other package needs to know
// about more than one of them.
package engine

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/hints"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/kevinawalsh/prover9/saturate"
)

// Config configures a run: the term order to search under, the pool size
// (an upper bound on how many clause contexts can be live at once — every
// active-set entry, every demodulator, every hint, plus each inference's
// transient parents all draw a multiplier from the same pool), and the
// resource limits a run should respect (spec.md §4.L).
type Config struct {
	OrderKind   order.Kind
	PoolSize    int
	Limits      saturate.Limits
	Logger      hclog.Logger
	LoggerLevel hclog.Level
}

// DefaultPoolSize is used when a Config leaves PoolSize unset (zero).
const DefaultPoolSize = 4096

// Engine is one proof-search run's shared state: everything that must be
// constructed once and passed down, rather than reached for as ambient
// global state (spec.md §9's explicit "avoid hidden static state" note,
// already honored by term.FlagPool and subst.MultiplierPool individually —
// Engine is just where those choices get made concretely, in one place).
type Engine struct {
	RunID uuid.UUID

	Tab   *symtab.Table
	Order *order.Order
	Flags *term.FlagPool
	Pool  *subst.MultiplierPool
	Log   hclog.Logger

	Loop *saturate.Loop
}

// New constructs an Engine ready to accept input clauses via Loop.Schedule
// and hint clauses via Loop.AddHint, then run the saturation loop.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		level := cfg.LoggerLevel
		if level == hclog.NoLevel {
			level = hclog.Info
		}
		log = hclog.New(&hclog.LoggerOptions{Name: "prover9", Level: level})
	}

	poolSize := cfg.PoolSize
	if poolSize == 0 {
		poolSize = DefaultPoolSize
	}

	tab := symtab.New()
	ord := order.New(tab, cfg.OrderKind)
	pool := subst.NewMultiplierPool(poolSize)

	e := &Engine{
		RunID: uuid.New(),
		Tab:   tab,
		Order: ord,
		Flags: &term.FlagPool{},
		Pool:  pool,
		Log:   log.Named("engine"),
		Loop:  saturate.NewLoop(tab, ord, pool, cfg.Limits, log),
	}
	return e
}

// AddClauses validates a batch of input clauses against the symbol table's
// predicate/function clash invariant (spec.md §7: no symbol may be used as
// both a predicate and a function symbol across an input set) and, only if
// that check passes, schedules every one of them. This is the intake path
// an external parser/clausifier front end calls once per batch of input
// clauses; it exists to give symtab.Table.Validate an actual caller, since
// the clash check can't be done clause-by-clause (a clash is only visible
// across the whole batch).
func (e *Engine) AddClauses(clauses []*clause.Topform) error {
	predicateSyms := make(map[symtab.Num]bool)
	functionSyms := make(map[symtab.Num]bool)
	for _, c := range clauses {
		for _, l := range c.Literals {
			if l.Atom.IsRigid() {
				predicateSyms[l.Atom.Sym] = true
			}
			for _, a := range l.Atom.Args {
				collectFunctionSyms(a, functionSyms)
			}
		}
	}
	if err := e.Tab.Validate(predicateSyms, functionSyms); err != nil {
		return err
	}
	for _, c := range clauses {
		e.Loop.Schedule(c)
	}
	return nil
}

// collectFunctionSyms walks t and all its subterms (t itself is always an
// argument of some literal's predicate/equality atom here, so its own
// symbol is a function symbol too) and records every function symbol
// applied, skipping variables.
func collectFunctionSyms(t *term.Term, out map[symtab.Num]bool) {
	if t.IsVar() {
		return
	}
	out[t.Sym] = true
	for _, a := range t.Args {
		collectFunctionSyms(a, out)
	}
}

// AddHint is a thin pass-through to Loop.AddHint, logging the hint's ID at
// debug level so a run's log explains which hints actually took effect.
func (e *Engine) AddHint(h *hints.Hint) error {
	if err := e.Loop.AddHint(h); err != nil {
		return err
	}
	e.Log.Debug("registered hint", "id", h.ID, "labels", h.Labels)
	return nil
}

// Run executes the saturation loop to completion, logging the outcome.
func (e *Engine) Run() saturate.Result {
	e.Log.Info("starting saturation", "run_id", e.RunID.String())
	result := e.Loop.Run()
	e.Log.Info("saturation finished",
		"reason", string(result.Reason),
		"generated", result.Stats.Generated,
		"retained", result.Stats.Retained,
		"elapsed", result.Stats.Elapsed.String(),
	)
	return result
}
