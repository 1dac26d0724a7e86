package chgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Property 2 (spec §8): symmetric-edge duality. getEdge(v1,v2).found
// == getEdge(v2,v1).found, and when both are found the directional
// fields are mirror images of each other.
func TestInvariantSymmetricEdgeDuality(t *testing.T) {
	f := newCHStreamFixture()
	f.addBlock([]testVertex{
		{Lat: 1, Lon: 1, Arcs: []testArc{{Target: 1, FW: 3, BW: 9, FC: 100, BC: 200}}},
		{Lat: 2, Lon: 2},
	})
	stream, layout := f.build()

	r, err := newTestReader(stream, layout, 1024, 12)
	require.NoError(t, err)
	defer r.Close()

	forward, found, err := r.GetEdge(0, 1)
	require.NoError(t, err)
	require.True(t, found)

	backward, found, err := r.GetEdge(1, 0)
	require.NoError(t, err)
	require.True(t, found)

	require.Equal(t, forward.ForwardWeight, backward.BackwardWeight)
	require.Equal(t, forward.BackwardWeight, backward.ForwardWeight)
	require.Equal(t, forward.ForwardContractedID, backward.BackwardContractedID)
	require.Equal(t, forward.BackwardContractedID, backward.ForwardContractedID)
	require.Equal(t, VertexID(1), forward.Neighbour)
	require.Equal(t, VertexID(0), backward.Neighbour)
}

// Property 8 (spec §8): idempotence. Calling the same query twice
// returns value-equal results, including across a cache hit.
func TestInvariantIdempotence(t *testing.T) {
	f := newCHStreamFixture()
	f.addBlock([]testVertex{{Lat: 5, Lon: 6}})
	stream, layout := f.build()

	r, err := newTestReader(stream, layout, 1024, 12)
	require.NoError(t, err)
	defer r.Close()

	first, found1, err1 := r.GetVertex(0)
	second, found2, err2 := r.GetVertex(0)

	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, found1, found2)
	require.Equal(t, first, second)
}
