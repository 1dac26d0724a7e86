package chgraph

// adjacencyEntry is one materialized arc of an EdgeIterator, captured
// by value at construction so the iterator never reaches back into a
// cache interior.
type adjacencyEntry struct {
	data          EdgeData
	intermediates []Point
}

// EdgeIterator is a lazy, finite, restartable sequence over the arcs
// of a vertex fetched by Reader.Edges (spec §4.4 getEdges(v)).
//
// A freshly constructed iterator is positioned before the first
// element; call MoveNext before reading Neighbour/EdgeData/etc. After
// MoveNext returns false the iterator is terminal until Reset.
type EdgeIterator struct {
	entries []adjacencyEntry
	pos     int // index of the current entry, -1 before first MoveNext
}

func newEdgeIterator(entries []adjacencyEntry) *EdgeIterator {
	return &EdgeIterator{entries: entries, pos: -1}
}

// MoveNext advances to the next arc, returning false once exhausted.
func (it *EdgeIterator) MoveNext() bool {
	if it.pos+1 >= len(it.entries) {
		it.pos = len(it.entries)
		return false
	}
	it.pos++
	return true
}

// Reset rewinds the iterator to before the first element.
func (it *EdgeIterator) Reset() { it.pos = -1 }

// Len returns the total number of arcs, independent of position.
func (it *EdgeIterator) Len() int { return len(it.entries) }

func (it *EdgeIterator) current() adjacencyEntry {
	if it.pos < 0 || it.pos >= len(it.entries) {
		panic("chgraph: EdgeIterator read before MoveNext or after exhaustion")
	}
	return it.entries[it.pos]
}

// Neighbour returns the current arc's target vertex.
func (it *EdgeIterator) Neighbour() VertexID { return it.current().data.Neighbour }

// EdgeData returns the current arc's directional weight and shortcut
// metadata, as stored (never reversed).
func (it *EdgeIterator) EdgeData() EdgeData { return it.current().data }

// Intermediates returns the current arc's geometry, possibly empty.
func (it *EdgeIterator) Intermediates() []Point {
	pts := it.current().intermediates
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// IsInverted is always false: Reader.Edges materializes arcs exactly
// as the owning vertex's block stores them.
func (it *EdgeIterator) IsInverted() bool { return false }

// InvertedEdgeData computes the current arc's data as seen from the
// neighbour's side: the forward/backward weight pair and the
// forward/backward contracted-id pair are swapped.
func (it *EdgeIterator) InvertedEdgeData(fromNeighbour VertexID) EdgeData {
	return it.current().data.Inverted(fromNeighbour)
}
