package search

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/processor"
	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/rules"
)

// Result is the outcome of one search
type Result struct {
	// Actions is the root side's chosen action map; empty when it cannot act
	Actions core.ActionMap
	// Value is the minimax value of the chosen line
	Value float64
	// Partial is set when the deadline stopped the search before every root
	// child was searched
	Partial bool
	Metrics Metrics
}

type Option func(ab *AlphaBeta)

func WithWeights(weights Weights) Option {
	return func(ab *AlphaBeta) {
		ab.weights = weights
	}
}

func WithActionGenerator(gen ActionGenerator) Option {
	return func(ab *AlphaBeta) {
		if gen != nil {
			ab.gen = gen
		}
	}
}

func WithTransition(transition Transition) Option {
	return func(ab *AlphaBeta) {
		if transition != nil {
			ab.transition = transition
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(ab *AlphaBeta) {
		ab.logger = logger
	}
}

// WithTimeBudget bounds each search by wall-clock time
func WithTimeBudget(budget time.Duration) Option {
	return func(ab *AlphaBeta) {
		if budget > 0 {
			ab.timeBudget = budget
		}
	}
}

// WithParallelRoot searches root children on up to workers goroutines, each
// with a full window
func WithParallelRoot(workers int) Option {
	return func(ab *AlphaBeta) {
		if workers > 1 {
			ab.workers = workers
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.collectMetrics = true
	}
}

// AlphaBeta is a depth-bounded minimax search with alpha-beta pruning and
// static move ordering. It keeps no state between calls to Search.
type AlphaBeta struct {
	weights        Weights
	gen            ActionGenerator
	transition     Transition
	logger         zerolog.Logger
	timeBudget     time.Duration
	workers        int
	collectMetrics bool
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{
		weights: DefaultWeights(),
		gen:     rules.NewLegalMoveCalculator(),
		logger:  zerolog.Nop(),
		workers: 1,
	}
	for _, option := range options {
		option(ab)
	}
	ab.logger = ab.logger.With().Str("component", "AlphaBeta").Logger()
	if ab.transition == nil {
		ab.transition = processor.NewActionProcessor(ab.logger)
	}
	return ab
}

// Search picks the action map for root.ActingSide looking maxDepth plies ahead.
//
// The root side maximizes and its opponent minimizes; plies alternate as the
// acting side flips. Among equally valued root moves the first in heuristic
// order wins. A depth of zero, or a root side that cannot act, yields an empty
// map. If ctx or the time budget expires, the best fully searched root move is
// returned with Partial set.
func (ab *AlphaBeta) Search(ctx context.Context, root core.BoardState, maxDepth int) (Result, error) {
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

	var (
		best    *Node
		value   float64
		partial bool
	)
	if ab.workers > 1 {
		best, value, partial, err = s.parallelBestChild(rootNode, maxDepth, ab.workers)
	} else {
		best, value, partial, err = s.bestChild(rootNode, maxDepth)
	}
	if err != nil {
		return Result{}, core.WrapSearchError(maxDepth, err)
	}

	if best == nil {
		result.Value = s.leaf(rootNode)
	} else {
		result.Actions = best.Incoming.Clone()
		result.Value = value
	}
	result.Partial = partial
	result.Metrics = s.metrics.Complete()

	logEvent := ab.logger.Debug()
	if partial {
		logEvent = ab.logger.Warn()
	}
	logEvent.
		Int("depth", maxDepth).
		Str("side", root.ActingSide.String()).
		Str("actions", result.Actions.String()).
		Float64("value", result.Value).
		Bool("partial", partial).
		Int64("nodes", result.Metrics.NodesExpanded).
		Int64("cutoffs", result.Metrics.Cutoffs).
		Msg("Search complete")

	return result, nil
}

// prepare validates the request and builds the per-call searcher
func (ab *AlphaBeta) prepare(ctx context.Context, root core.BoardState, maxDepth int) (*searcher, context.CancelFunc, error) {
	if maxDepth < 0 {
		return nil, nil, core.WrapSearchError(maxDepth, core.ErrInvalidDepth)
	}
	if err := root.Validate(); err != nil {
		return nil, nil, core.WrapSearchError(maxDepth, err)
	}

	cancel := context.CancelFunc(func() {})
	if ab.timeBudget > 0 {
		ctx, cancel = context.WithTimeout(ctx, ab.timeBudget)
	}

	metrics := NewNoMetricsCollector()
	if ab.collectMetrics {
		metrics = NewMetricsCollector()
	}
	metrics.Start()

	return &searcher{
		ctx:        ctx,
		eval:       NewEvaluator(ab.weights, root.ActingSide, ab.gen),
		gen:        ab.gen,
		transition: ab.transition,
		metrics:    metrics,
		root:       root.ActingSide,
	}, cancel, nil
}

// searcher carries everything one search call needs through the recursion
type searcher struct {
	ctx        context.Context
	eval       *Evaluator
	gen        ActionGenerator
	transition Transition
	metrics    MetricsCollector
	root       core.Side
}

func (s *searcher) maximizing(n *Node) bool {
	return n.State.ActingSide == s.root
}

func (s *searcher) terminal(n *Node, depth int) bool {
	return depth == 0 || !n.State.HasLiving(n.State.ActingSide)
}

func (s *searcher) leaf(n *Node) float64 {
	s.metrics.AddLeaf()
	return s.eval.Utility(n.State)
}

// value is the fail-soft alpha-beta value of n searched depth plies deep
func (s *searcher) value(n *Node, depth int, alpha, beta float64) (float64, error) {
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

	if s.maximizing(n) {
		v := math.Inf(-1)
		for _, c := range children {
			cv, err := s.value(c.node, depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			v = max(v, cv)
			alpha = max(alpha, v)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return v, nil
	}

	v := math.Inf(1)
	for _, c := range children {
		cv, err := s.value(c.node, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = min(v, cv)
		beta = min(beta, v)
		if beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return v, nil
}

// bestChild searches every child of the root and returns the one with the
// highest value. On deadline it returns the best child finished so far, or the
// first child in heuristic order when none finished.
func (s *searcher) bestChild(root *Node, depth int) (*Node, float64, bool, error) {
	children, err := s.orderChildren(root)
	if err != nil {
		return nil, 0, false, err
	}
	if len(children) == 0 {
		return nil, 0, false, nil
	}

	alpha, beta := math.Inf(-1), math.Inf(1)
	var best *Node
	bestValue := math.Inf(-1)
	for _, c := range children {
		v, err := s.value(c.node, depth-1, alpha, beta)
		if isDeadline(err) {
			if best == nil {
				return children[0].node, children[0].static, true, nil
			}
			return best, bestValue, true, nil
		}
		if err != nil {
			return nil, 0, false, err
		}
		if best == nil || v > bestValue {
			best, bestValue = c.node, v
		}
		alpha = max(alpha, bestValue)
	}
	return best, bestValue, false, nil
}

func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
