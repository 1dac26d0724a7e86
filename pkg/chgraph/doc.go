// Package chgraph is a read-only, block-paged data source for a
// Contraction-Hierarchy (CH) routing graph persisted in a single
// seekable stream.
//
// It answers the queries a shortest-path engine needs ("give me the
// location of vertex V", "give me the edges adjacent to V", "give me
// the edge V1->V2 and its geometry", "give me the set of vertices
// inside this geographic bounding box"), while keeping only a small
// working set of the graph resident in memory behind three
// fixed-capacity LRU caches fronting three on-disk structures:
// vertex-blocks, edge-geometry blocks, and spatial regions (map
// tiles).
//
// # Basic usage
//
//	reader, err := chgraph.NewReader(stream, layout, chgraph.ReaderOptions{
//	    BlockSize: 1024,
//	    Zoom:      12,
//	    Profiles:  []string{"car", "bike"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	v, found, err := reader.GetVertex(42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !found {
//	    log.Println("vertex 42 not in this stream")
//	}
//
// # Adjacency
//
//	it, err := reader.Edges(42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for it.MoveNext() {
//	    fmt.Println(it.Neighbour(), it.EdgeData())
//	}
//
// # Bounding-box queries
//
//	edges, err := reader.EdgesInBounds(chgraph.Bounds{
//	    MinLon: -122.5, MaxLon: -122.0,
//	    MinLat: 37.5, MaxLat: 38.0,
//	})
//
// # Concurrency
//
// A Reader is single-threaded cooperative: one reader instance owns
// its stream and caches exclusively, and every operation is blocking
// and synchronous. Callers wanting parallelism should construct
// independent Reader instances over independent stream handles; the
// underlying index tables are immutable after construction and may be
// shared by reference across such readers.
package chgraph
