package search

import (
	"sync/atomic"
	"time"
)

type Metrics struct {
	StartTime       time.Time
	Duration        time.Duration
	NodesExpanded   int64
	LeavesEvaluated int64
	Cutoffs         int64
}

type MetricsCollector interface {
	Start()
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() Metrics
}

type metricsCollector struct {
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) Complete() Metrics {
	return Metrics{
		StartTime:       m.startTime,
		Duration:        time.Since(m.startTime),
		NodesExpanded:   m.nodes.Load(),
		LeavesEvaluated: m.leaves.Load(),
		Cutoffs:         m.cutoffs.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()            {}
func (m *noMetricsCollector) AddNode()          {}
func (m *noMetricsCollector) AddLeaf()          {}
func (m *noMetricsCollector) AddCutoff()        {}
func (m *noMetricsCollector) Complete() Metrics { return Metrics{} }
