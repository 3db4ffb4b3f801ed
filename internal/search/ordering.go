package search

import "sort"

type scoredNode struct {
	node   *Node
	static float64
}

// orderChildren expands n and sorts its children by their own static utility:
// best-first for the side being searched for, worst-first for its opponent.
// The sort is stable so equal scores keep generation order.
func (s *searcher) orderChildren(n *Node) ([]scoredNode, error) {
	s.metrics.AddNode()

	children, err := n.Children(s.gen, s.transition)
	if err != nil {
		return nil, err
	}

	scored := make([]scoredNode, len(children))
	for i, c := range children {
		scored[i] = scoredNode{node: c, static: s.eval.Utility(c.State)}
	}

	if s.maximizing(n) {
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].static > scored[j].static })
	} else {
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].static < scored[j].static })
	}
	return scored, nil
}
