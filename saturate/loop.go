package saturate

import (
	"github.com/hashicorp/go-hclog"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/hints"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
)

// Result is what a saturation run produces: why it stopped, the empty
// clause if one was derived, and the final counters.
type Result struct {
	Reason Reason
	Proof  *clause.Topform
	Stats  Stats
}

// Loop drives the given-clause algorithm of spec.md §4.L. It owns the
// passive/active clause sets, the id generator, the hint index, and the
// limits tracker; Run executes the loop to completion.
type Loop struct {
	tab   *symtab.Table
	ord   *order.Order
	pool  *subst.MultiplierPool
	log   hclog.Logger
	ids   *IDGen
	hints *hints.Index

	Passive *Passive
	Active  *Active
	Tracker *Tracker
}

// NewLoop returns a Loop ready to accept input clauses via Schedule.
func NewLoop(tab *symtab.Table, ord *order.Order, pool *subst.MultiplierPool, limits Limits, log hclog.Logger) *Loop {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Loop{
		tab:     tab,
		ord:     ord,
		pool:    pool,
		log:     log.Named("saturate"),
		ids:     NewIDGen(1),
		hints:   hints.NewIndex(tab, pool),
		Passive: NewPassive(),
		Active:  NewActive(tab, ord, pool),
		Tracker: NewTracker(limits),
	}
}

// AddHint registers a hint clause that will override derived-clause
// weights and can itself be scheduled as a starting clause.
func (lp *Loop) AddHint(h *hints.Hint) error {
	_, err := lp.hints.Insert(h)
	return err
}

// Schedule assigns c a fresh ID (if it doesn't already have one from a
// prior run) and drops it into the passive queue at its effective weight,
// honoring any matching hint override (spec.md §4.J).
func (lp *Loop) Schedule(c *clause.Topform) {
	if c.ID == 0 {
		c.ID = lp.ids.Next()
	}
	var h *hints.Hint
	if len(c.Literals) == 1 {
		var qc subst.Context
		var tr subst.Trail
		found, it := lp.hints.MatchUnit(c.Literals[0], &qc, &tr)
		if it != nil {
			it.Cancel()
		}
		h = found
	}
	w := EffectiveClauseWeight(c, h)
	c.Weight = w
	lp.Passive.Schedule(c, w)
}

// withContexts acquires two fresh multiplier-pool contexts and a trail,
// runs fn, and releases the contexts no matter how fn returns.
func (lp *Loop) withContexts(fn func(qc1, qc2 *subst.Context, tr *subst.Trail)) error {
	qc1, err := lp.pool.Acquire()
	if err != nil {
		return err
	}
	defer lp.pool.Release(qc1)
	qc2, err := lp.pool.Acquire()
	if err != nil {
		return err
	}
	defer lp.pool.Release(qc2)
	var tr subst.Trail
	fn(qc1, qc2, &tr)
	return nil
}

// generate runs every generating inference rule with given playing the
// "given clause" role against every clause currently in active (spec.md
// §4.L: "for each generating rule: for each new clause c := rule(given,
// active): c = cheap_normalize(c); schedule(passive, c)"), scheduling
// every clause produced.
func (lp *Loop) generate(given *clause.Topform) error {
	var produced []*clause.Topform

	for gi, gl := range given.Literals {
		err := lp.withContexts(func(qgiven, _ *subst.Context, tr *subst.Trail) {
			// Query under qgiven (given's own literal's context); a hit's
			// bindings land partly in qgiven, partly in the matched
			// entry's own long-lived Ctx (acquired when that clause was
			// integrated) — reuse that Ctx rather than a fresh one so
			// Resolve rebuilds the candidate's literals from the same
			// bindings the match just produced.
			it, obj := lp.Active.Candidates(!gl.Positive, gl.Atom, qgiven, tr)
			defer it.Cancel()
			for obj != nil {
				cand := obj.(literalEntry)
				candCtx := it.Current().Ctx
				if r, ok := Resolve(given, gi, cand.clause, cand.lit, qgiven, candCtx, tr); ok {
					produced = append(produced, r)
				}
				obj = it.Next()
			}
		})
		if err != nil {
			return err
		}

		for gj := gi + 1; gj < len(given.Literals); gj++ {
			err := lp.withContexts(func(qc, _ *subst.Context, tr *subst.Trail) {
				if r, ok := Factor(given, gi, gj, qc, tr); ok {
					produced = append(produced, r)
				}
			})
			if err != nil {
				return err
			}
		}

		if !gl.Positive && gl.IsEquality(lp.tab) {
			err := lp.withContexts(func(qc, _ *subst.Context, tr *subst.Trail) {
				if r, ok := XXResolve(lp.tab, given, gi, qc, tr); ok {
					produced = append(produced, r)
				}
			})
			if err != nil {
				return err
			}
		}

		if gl.Positive && gl.IsEquality(lp.tab) {
			for side := 0; side < 2; side++ {
				for _, into := range append(lp.Active.All(), given) {
					for il, ilit := range into.Literals {
						for _, pos := range AllPositions(ilit.Atom) {
							if into == given && il == gi {
								continue
							}
							err := lp.withContexts(func(qfrom, qinto *subst.Context, tr *subst.Trail) {
								if r, ok := Paramodulate(lp.tab, given, gi, side, into, il, pos, qfrom, qinto, tr); ok {
									produced = append(produced, r)
								}
							})
							if err != nil {
								return err
							}
						}
					}
				}
			}
		}

		if gl.Positive && gl.IsEquality(lp.tab) {
			for gj := gi + 1; gj < len(given.Literals); gj++ {
				other := given.Literals[gj]
				if !other.Positive || !other.IsEquality(lp.tab) {
					continue
				}
				err := lp.withContexts(func(qc, _ *subst.Context, tr *subst.Trail) {
					if r, ok := EqualityFactor(lp.tab, given, gi, gj, qc, tr); ok {
						produced = append(produced, r)
					}
					if r, ok := EqualityFactor(lp.tab, given, gj, gi, qc, tr); ok {
						produced = append(produced, r)
					}
				})
				if err != nil {
					return err
				}
			}
		}
	}

	// Active already holds an oriented equality whenever that equality was
	// retained on an earlier iteration; without this pass, such an
	// equality only ever gets to play the "from" role when it is itself
	// the given clause, so it would never superpose into a later,
	// unrelated given clause's literals.
	for _, from := range lp.Active.All() {
		if from.ID == given.ID {
			continue
		}
		for fromLit, fl := range from.Literals {
			if !fl.Positive || !fl.IsEquality(lp.tab) {
				continue
			}
			for side := 0; side < 2; side++ {
				for il, ilit := range given.Literals {
					for _, pos := range AllPositions(ilit.Atom) {
						err := lp.withContexts(func(qfrom, qinto *subst.Context, tr *subst.Trail) {
							if r, ok := Paramodulate(lp.tab, from, fromLit, side, given, il, pos, qfrom, qinto, tr); ok {
								produced = append(produced, r)
							}
						})
						if err != nil {
							return err
						}
					}
				}
			}
		}
	}

	if r, ok := Hyperresolve(given, lp.Active, lp.pool); ok {
		produced = append(produced, r)
	}
	if r, ok := URResolve(given, lp.Active, lp.pool); ok {
		produced = append(produced, r)
	}

	for _, c := range produced {
		c, _ = Simplify(lp.tab, lp.ord, lp.Active, c)
		if IsRedundant(lp.tab, lp.Active, c) {
			continue
		}
		lp.Tracker.RecordGenerated(1)
		lp.Schedule(c)
	}
	return nil
}

// backSimplify rewrites every active clause against a newly oriented
// demodulator eq, demoting (removing and rescheduling) any clause whose
// rewrite actually changes it (spec.md §4.L: "if given is oriented eq:
// back_simplify(active, given)"). A demoted clause's justification is
// restamped with a back_rewrite primary cell (its Simplify-added Rewrite
// secondary is kept alongside it), distinguishing back-demodulation from
// ordinary forward simplification in the proof trace.
func (lp *Loop) backSimplify(eq *clause.Topform) {
	var demoted []*clause.Topform
	lp.Active.Each(func(c *clause.Topform) bool {
		if c.ID == eq.ID {
			return true
		}
		if _, changed := Simplify(lp.tab, lp.ord, lp.Active, c); changed {
			secondaries := c.Just.Secondaries
			c.Just = justify.NewBackRewrite(c.ID)
			c.Just.Secondaries = secondaries
			demoted = append(demoted, c)
		}
		return true
	})
	for _, c := range demoted {
		lp.Active.Remove(c)
		if IsRedundant(lp.tab, lp.Active, c) {
			continue
		}
		lp.Tracker.RecordGenerated(1)
		lp.Schedule(c)
	}
}

// Run executes the given-clause algorithm until the empty clause is
// derived, passive is exhausted, or a tracked limit trips.
func (lp *Loop) Run() Result {
	depth := 0
	for {
		if reason := lp.Tracker.Check(lp.Active.Len(), depth); reason != ReasonNone {
			return Result{Reason: reason, Stats: lp.Tracker.Snapshot()}
		}
		given := lp.Passive.PopLightest()
		if given == nil {
			return Result{Reason: ReasonSOSEmpty, Stats: lp.Tracker.Snapshot()}
		}

		given, _ = Simplify(lp.tab, lp.ord, lp.Active, given)
		if IsRedundant(lp.tab, lp.Active, given) {
			continue
		}

		if given.IsEmpty() {
			lp.Tracker.RecordRetained(1)
			return Result{Reason: ReasonProof, Proof: given, Stats: lp.Tracker.Snapshot()}
		}

		if err := lp.Active.Integrate(given); err != nil {
			lp.log.Error("integrate failed", "clause", given.ID, "error", err)
			continue
		}
		lp.Tracker.RecordRetained(1)

		if rule, ok := OrientedDemodulator(lp.ord, given); ok && rule.Oriented {
			lp.backSimplify(given)
		}

		if err := lp.generate(given); err != nil {
			lp.log.Error("generate failed", "clause", given.ID, "error", err)
		}
		depth++
	}
}
