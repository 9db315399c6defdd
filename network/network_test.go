package network_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reliefroute/network"
)

func TestAddEdgeCreatesEndpoints(t *testing.T) {
	g := network.NewGraph()
	eid, err := g.AddEdge("S", "P", 10)
	require.NoError(t, err)
	require.Equal(t, "e1", eid)
	require.True(t, g.HasVertex("S"))
	require.True(t, g.HasVertex("P"))
	require.True(t, g.HasEdge("S", "P"))
	require.False(t, g.HasEdge("P", "S"), "edges are directed")
	require.Equal(t, 2, g.VertexCount())
	require.Equal(t, 1, g.EdgeCount())
}

func TestAddEdgeValidation(t *testing.T) {
	g := network.NewGraph()
	_, err := g.AddEdge("", "P", 1)
	require.ErrorIs(t, err, network.ErrEmptyVertexID)
	_, err = g.AddEdge("S", "P", -1)
	require.ErrorIs(t, err, network.ErrBadCapacity)
	_, err = g.AddEdge("S", "P", math.NaN())
	require.ErrorIs(t, err, network.ErrBadCapacity)
	_, err = g.AddEdge("S", "S", 1)
	require.ErrorIs(t, err, network.ErrLoopNotAllowed)

	_, err = g.AddEdge("S", "P", math.Inf(1))
	require.NoError(t, err, "uncapped lanes are legal")
	_, err = g.AddEdge("S", "P", 1)
	require.ErrorIs(t, err, network.ErrMultiEdgeNotAllowed)
}

func TestOptions(t *testing.T) {
	g := network.NewGraph(network.WithMultiEdges(), network.WithLoops())
	_, err := g.AddEdge("A", "A", 1)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", 1)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", 2)
	require.NoError(t, err)

	nbrs, err := g.Neighbors("A")
	require.NoError(t, err)
	require.Len(t, nbrs, 3)
	require.Equal(t, "A", nbrs[0].To)
	require.Equal(t, []string{"e2", "e3"}, []string{nbrs[1].ID, nbrs[2].ID})
}

func TestVertexMetadataMerge(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddVertex("P", map[string]any{"role": "Port"}))
	require.NoError(t, g.AddVertex("P", map[string]any{"capacity": 20.0}))
	v, err := g.Vertex("P")
	require.NoError(t, err)
	require.Equal(t, "Port", v.Metadata["role"])
	require.Equal(t, 20.0, v.Metadata["capacity"])

	_, err = g.Vertex("nope")
	require.ErrorIs(t, err, network.ErrVertexNotFound)
	_, err = g.Neighbors("nope")
	require.ErrorIs(t, err, network.ErrVertexNotFound)
	require.ErrorIs(t, g.AddVertex("", nil), network.ErrEmptyVertexID)
}

func TestDeterministicOrdering(t *testing.T) {
	g := network.NewGraph()
	for _, e := range [][2]string{{"W", "C2"}, {"P", "W"}, {"W", "C1"}, {"S", "P"}} {
		_, err := g.AddEdge(e[0], e[1], 1)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"C1", "C2", "P", "S", "W"}, g.Vertices())

	var got []string
	for _, e := range g.Edges() {
		got = append(got, e.From+"→"+e.To)
	}
	require.Equal(t, []string{"P→W", "S→P", "W→C1", "W→C2"}, got)
}

// TestConcurrentAddEdge checks that parallel writers produce unique edge IDs.
func TestConcurrentAddEdge(t *testing.T) {
	g := network.NewGraph(network.WithMultiEdges())
	const workers, per = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				_, err := g.AddEdge(fmt.Sprintf("S%d", w), "P", 1)
				require.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*per, g.EdgeCount())
	seen := make(map[string]struct{})
	for _, e := range g.Edges() {
		seen[e.ID] = struct{}{}
	}
	require.Len(t, seen, workers*per)
}
