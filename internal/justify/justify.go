// Package justify implements the per-clause provenance records from
// spec.md §4.K: a primary cell recording how a clause was derived, plus
// zero or more secondary cells recording simplifications folded into that
// derivation, sufficient for an external proof printer to replay the
// proof. Grounded on just.h/just.c in original_source/ (see _INDEX.md),
// adapted from its tagged-union C struct into a single Go struct with a
// Kind discriminant, since Go has no tagged unions and the payload shapes
// here are small enough not to need one.
package justify

// Kind discriminates both primary and secondary justification cells. The
// names mirror the Just_type enum in just.h exactly so the vocabulary
// stays recognizable to anyone who has read the original.
type Kind int

const (
	// Primary cells: exactly one per clause, naming how it came to exist.
	Input Kind = iota
	Goal
	Deny
	Clausify
	Copy
	BackRewrite
	BackUnitDel
	NewSymbol
	ExpandDef
	Resolve
	Hyper
	UR
	Factor
	XXRes
	Para
	ParaFX
	ParaIX
	ParaFXIX
	Instantiate
	Propositional

	// Secondary cells: zero or more per clause, each recording one
	// simplification applied on top of the primary derivation.
	Flip
	XX
	Merge
	Eval
	Rewrite
	UnitDel
)

func (k Kind) isPrimary() bool { return k <= Propositional }

// Direction is which side of a demodulator was used to rewrite.
type Direction int

const (
	L Direction = iota
	R
)

// DemodStep is one successful rewrite step folded into a Rewrite cell:
// which demodulator fired, its sequence number within the rewrite (so the
// trace is replayable in order), and which side of the equality was used.
type DemodStep struct {
	DemodulatorID int
	Sequence      int
	Dir           Direction
}

// ParaPositions holds the two position vectors a paramodulation-family
// primary cell needs: where in the "from" clause (the equation) and the
// "into" clause (the target) the inference occurred.
type ParaPositions struct {
	FromPos []int
	IntoPos []int
}

// Secondary is one secondary cell attached to a Just.
type Secondary struct {
	Kind Kind

	// Lit is the literal index the cell refers to (Flip, XX, Merge,
	// UnitDel); unused by Eval and Rewrite.
	Lit int
	// UnitDelID is the clause ID that subsumed a literal down to nothing,
	// for UnitDel.
	UnitDelID int
	// EvalCount is how many literals an Eval cell rewrote away.
	EvalCount int
	// Steps is the rewrite trace for a Rewrite cell, in application order.
	Steps []DemodStep
}

// Just is a clause's full justification: one primary cell plus any
// secondary cells, in the order they were applied.
type Just struct {
	Primary Kind

	// Parents holds the primary cell's parent clause IDs, order
	// significant (e.g. Resolve/Hyper/UR list every parent in inference
	// order; Factor/XXRes/Copy/Deny/etc. hold a single parent ID).
	Parents []int
	// Para holds the from/into position vectors for the Para family of
	// primaries; nil for every other primary kind.
	Para *ParaPositions
	// ExpandDefID is the definition clause's ID, set only when
	// Primary == ExpandDef (alongside the defined clause's own ID in
	// Parents[0]).
	ExpandDefID int
	// InstancePairs records (position, ...) data for Instantiate; kept as
	// opaque integer pairs since the core never interprets them itself —
	// only the external proof printer does.
	InstancePairs [][2]int

	Secondaries []Secondary
}

// Input, Goal, Deny, Copy, Propositional, BackRewrite, BackUnitDel and
// NewSymbol justifications all carry at most a single parent ID (or none,
// for Input/Goal).

func NewInput() *Just { return &Just{Primary: Input} }
func NewGoal() *Just  { return &Just{Primary: Goal} }

func NewDeny(parentID int) *Just       { return &Just{Primary: Deny, Parents: []int{parentID}} }
func NewClausify(parentID int) *Just   { return &Just{Primary: Clausify, Parents: []int{parentID}} }
func NewCopy(parentID int) *Just       { return &Just{Primary: Copy, Parents: []int{parentID}} }
func NewBackRewrite(parentID int) *Just {
	return &Just{Primary: BackRewrite, Parents: []int{parentID}}
}
func NewBackUnitDel(parentID int) *Just {
	return &Just{Primary: BackUnitDel, Parents: []int{parentID}}
}
func NewNewSymbol(parentID int) *Just { return &Just{Primary: NewSymbol, Parents: []int{parentID}} }
func NewPropositional(parentID int) *Just {
	return &Just{Primary: Propositional, Parents: []int{parentID}}
}

// NewExpandDef justifies a clause produced by folding definedID's
// equational definition into parentID.
func NewExpandDef(parentID, definedID int) *Just {
	return &Just{Primary: ExpandDef, Parents: []int{parentID}, ExpandDefID: definedID}
}

// NewResolve, NewHyper and NewUR justify generating inferences that
// consume an ordered list of parent clauses.
func NewResolve(parents []int) *Just { return &Just{Primary: Resolve, Parents: parents} }
func NewHyper(parents []int) *Just   { return &Just{Primary: Hyper, Parents: parents} }
func NewUR(parents []int) *Just      { return &Just{Primary: UR, Parents: parents} }

// NewFactor justifies a factoring step unifying lit1 and lit2 within
// parentID.
func NewFactor(parentID, lit1, lit2 int) *Just {
	return &Just{Primary: Factor, Parents: []int{parentID}, InstancePairs: [][2]int{{lit1, lit2}}}
}

// NewXXRes justifies an x=x tautology-resolution step against literal lit
// of parentID.
func NewXXRes(parentID, lit int) *Just {
	return &Just{Primary: XXRes, Parents: []int{parentID}, InstancePairs: [][2]int{{lit, 0}}}
}

// NewPara justifies one of the four paramodulation variants: plain,
// "from" flipped, "into" flipped, or both.
func NewPara(kind Kind, fromID, intoID int, fromPos, intoPos []int) *Just {
	if kind != Para && kind != ParaFX && kind != ParaIX && kind != ParaFXIX {
		panic("justify: NewPara requires a Para* kind")
	}
	return &Just{
		Primary: kind,
		Parents: []int{fromID, intoID},
		Para:    &ParaPositions{FromPos: fromPos, IntoPos: intoPos},
	}
}

// NewInstantiate justifies instantiating parentID's free variables per
// pairs (variable index, position-in-substitution), used by the
// propositional/ground instantiation machinery the clausifier hands off.
func NewInstantiate(parentID int, pairs [][2]int) *Just {
	return &Just{Primary: Instantiate, Parents: []int{parentID}, InstancePairs: pairs}
}

// WithFlip, WithXX, WithMerge, WithEval, WithRewrite and WithUnitDel
// append one secondary cell and return the receiver, so callers can chain
// them as simplification is discovered during integration.

func (j *Just) WithFlip(lit int) *Just {
	j.Secondaries = append(j.Secondaries, Secondary{Kind: Flip, Lit: lit})
	return j
}

func (j *Just) WithXX(lit int) *Just {
	j.Secondaries = append(j.Secondaries, Secondary{Kind: XX, Lit: lit})
	return j
}

func (j *Just) WithMerge(lit int) *Just {
	j.Secondaries = append(j.Secondaries, Secondary{Kind: Merge, Lit: lit})
	return j
}

func (j *Just) WithEval(count int) *Just {
	j.Secondaries = append(j.Secondaries, Secondary{Kind: Eval, EvalCount: count})
	return j
}

// WithRewrite folds a forward-demodulation trace (spec.md §4.H) into the
// justification as a single Rewrite cell; calling it with an empty steps
// slice is a no-op since a rewrite that touched nothing isn't worth
// recording.
func (j *Just) WithRewrite(steps []DemodStep) *Just {
	if len(steps) == 0 {
		return j
	}
	j.Secondaries = append(j.Secondaries, Secondary{Kind: Rewrite, Steps: steps})
	return j
}

func (j *Just) WithUnitDel(lit, subsumerID int) *Just {
	j.Secondaries = append(j.Secondaries, Secondary{Kind: UnitDel, Lit: lit, UnitDelID: subsumerID})
	return j
}

// ReferencedIDs returns the set of clause IDs j's justification references,
// directly — primary-cell parents plus any secondary-cell references
// (UnitDel's subsumer, each Rewrite step's demodulator), as distinct IDs
// in encounter order. This is the "parents-collection utility" from
// spec.md §4.K.
func (j *Just) ReferencedIDs() []int {
	seen := make(map[int]bool)
	var out []int
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, p := range j.Parents {
		add(p)
	}
	if j.Primary == ExpandDef {
		add(j.ExpandDefID)
	}
	for _, s := range j.Secondaries {
		switch s.Kind {
		case UnitDel:
			add(s.UnitDelID)
		case Rewrite:
			for _, step := range s.Steps {
				add(step.DemodulatorID)
			}
		}
	}
	return out
}

// Lookup resolves a clause ID to its justification; implemented by
// whatever clause store (package clause) holds the ID table, so this
// package stays independent of it.
type Lookup func(id int) (*Just, bool)

// Ancestry computes the set of clause IDs that start's justification
// chain transitively references — every clause an eventual proof replay
// would need — memoized through visited so shared ancestors are only
// walked once, and returned sorted by increasing ID (spec.md §4.K:
// "Ancestry computation memoizes through the ID table and sorts by
// increasing ID").
func Ancestry(lookup Lookup, start int) []int {
	visited := make(map[int]bool)
	var walk func(id int)
	walk = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		j, ok := lookup(id)
		if !ok {
			return
		}
		for _, p := range j.ReferencedIDs() {
			walk(p)
		}
	}
	walk(start)
	delete(visited, start)

	out := make([]int, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
