package saturate

// IDGen hands out clause IDs in increasing order, matching the teacher's
// append-only symbol numbering style (internal/symtab.Table) applied to
// clauses instead of symbols: every derived clause gets a fresh, never
// reused integer ID, which is what justify.Ancestry and the pair scheduler
// both assume.
type IDGen struct {
	next int
}

// NewIDGen returns a generator whose first Next() call returns start.
func NewIDGen(start int) *IDGen {
	return &IDGen{next: start}
}

// Next returns a fresh ID and advances the generator.
func (g *IDGen) Next() int {
	id := g.next
	g.next++
	return id
}
