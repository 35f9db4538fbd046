package metrics

import (
	"sync/atomic"
	"time"

	"github.com/AdrienDelgado/SantoriniAI/game"
)

type SearchMetric struct {
	Goroutines int
	Depth      int
	Duration   time.Duration
	Nodes      int // Expanded nodes
	Leaves     int // Heuristically evaluated nodes
	Terminals  int // Won or lost nodes
	Prunes     int // Alpha-beta cutoffs
	Timeouts   int // Nodes cut short by the deadline
	Value      float64
}

type MoveMetric struct {
	Step   int
	Player int
	Phase  game.ActionType
	Action game.Action
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int
	Winner         int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, depth int)
	AddNode()
	AddLeaf()
	AddTerminal()
	AddPrune()
	AddTimeout()
	Complete(value float64) SearchMetric
}

type collector struct {
	goroutines int
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	terminals  atomic.Int64
	prunes     atomic.Int64
	timeouts   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.terminals.Store(0)
	m.prunes.Store(0)
	m.timeouts.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) AddTimeout() {
	m.timeouts.Add(1)
}

func (m *collector) Complete(value float64) SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Terminals:  int(m.terminals.Load()),
		Prunes:     int(m.prunes.Load()),
		Timeouts:   int(m.timeouts.Load()),
		Value:      value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int)          {}
func (m *dummyCollector) AddNode()                             {}
func (m *dummyCollector) AddLeaf()                             {}
func (m *dummyCollector) AddTerminal()                         {}
func (m *dummyCollector) AddPrune()                            {}
func (m *dummyCollector) AddTimeout()                          {}
func (m *dummyCollector) Complete(value float64) SearchMetric { return SearchMetric{Value: value} }
