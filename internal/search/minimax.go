package search

import (
	"context"
	"math"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// Minimax runs a plain minimax over the same tree Search explores, visiting
// every node. It shares Search's terminal rules, move ordering and tie-break,
// and exists as a reference for checking the pruned search.
func (ab *AlphaBeta) Minimax(ctx context.Context, root core.BoardState, maxDepth int) (Result, error) {
	s, cancel, err := ab.prepare(ctx, root, maxDepth)
	if err != nil {
		return Result{}, err
	}
	defer cancel()

	rootNode := NewRoot(root)
	result := Result{Actions: core.ActionMap{}}
	if s.terminal(rootNode, maxDepth) {
		result.Value = s.leaf(rootNode)
		result.Metrics = s.metrics.Complete()
		return result, nil
	}

	children, err := s.orderChildren(rootNode)
	if err != nil {
		return Result{}, core.WrapSearchError(maxDepth, err)
	}
	if len(children) == 0 {
		result.Value = s.leaf(rootNode)
		result.Metrics = s.metrics.Complete()
		return result, nil
	}

	var best *Node
	bestValue := math.Inf(-1)
	for _, c := range children {
		v, err := s.minimax(c.node, maxDepth-1)
		if err != nil {
			return Result{}, core.WrapSearchError(maxDepth, err)
		}
		if best == nil || v > bestValue {
			best, bestValue = c.node, v
		}
	}

	result.Actions = best.Incoming.Clone()
	result.Value = bestValue
	result.Metrics = s.metrics.Complete()
	return result, nil
}

func (s *searcher) minimax(n *Node, depth int) (float64, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	if s.terminal(n, depth) {
		return s.leaf(n), nil
	}

	children, err := s.orderChildren(n)
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return s.leaf(n), nil
	}

	maximizing := s.maximizing(n)
	v := math.Inf(1)
	if maximizing {
		v = math.Inf(-1)
	}
	for _, c := range children {
		cv, err := s.minimax(c.node, depth-1)
		if err != nil {
			return 0, err
		}
		if maximizing {
			v = max(v, cv)
		} else {
			v = min(v, cv)
		}
	}
	return v, nil
}
