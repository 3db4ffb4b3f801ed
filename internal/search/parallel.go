package search

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// parallelBestChild searches the root's children concurrently. Each child gets
// an independent full window, so every finished child carries its exact value
// and the pick matches the sequential search: the first maximal child in
// heuristic order.
func (s *searcher) parallelBestChild(root *Node, depth, workers int) (*Node, float64, bool, error) {
	children, err := s.orderChildren(root)
	if err != nil {
		return nil, 0, false, err
	}
	if len(children) == 0 {
		return nil, 0, false, nil
	}

	values := make([]float64, len(children))
	done := make([]bool, len(children))

	g, gctx := errgroup.WithContext(s.ctx)
	g.SetLimit(workers)
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			v, err := s.withContext(gctx).value(c.node, depth-1, math.Inf(-1), math.Inf(1))
			if isDeadline(err) {
				return nil
			}
			if err != nil {
				return err
			}
			values[i] = v
			done[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, false, err
	}

	var best *Node
	bestValue := math.Inf(-1)
	partial := false
	for i, c := range children {
		if !done[i] {
			partial = true
			continue
		}
		if best == nil || values[i] > bestValue {
			best, bestValue = c.node, values[i]
		}
	}
	if best == nil {
		return children[0].node, children[0].static, true, nil
	}
	return best, bestValue, partial, nil
}

// withContext returns a copy of s bound to ctx. Everything else a searcher
// holds is safe to share across goroutines.
func (s *searcher) withContext(ctx context.Context) *searcher {
	c := *s
	c.ctx = ctx
	return &c
}
