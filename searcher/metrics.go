package searcher

import (
	"fmt"
	"sort"
	"strings"
)

// Metrics summarizes one search: how many states it expanded, how its
// branches bottomed out, and where pruning cut them off.
type Metrics struct {
	ExpandedNodes    int
	DepthLimitLeaves int
	TerminalLeaves   int
	PrunedBranches   map[int]int // count per depth
}

// Pruned returns the total number of pruned branches across all depths.
func (m Metrics) Pruned() int {
	total := 0
	for _, count := range m.PrunedBranches {
		total += count
	}
	return total
}

func (m Metrics) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "expanded %d nodes, %d depth limit leaves, %d terminal leaves",
		m.ExpandedNodes, m.DepthLimitLeaves, m.TerminalLeaves)
	if len(m.PrunedBranches) > 0 {
		depths := make([]int, 0, len(m.PrunedBranches))
		for depth := range m.PrunedBranches {
			depths = append(depths, depth)
		}
		sort.Ints(depths)
		parts := make([]string, 0, len(depths))
		for _, depth := range depths {
			parts = append(parts, fmt.Sprintf("%d@%d", m.PrunedBranches[depth], depth))
		}
		fmt.Fprintf(&b, ", pruned %s", strings.Join(parts, " "))
	}
	return b.String()
}

// Collector gathers search counters. A search runs on a single goroutine,
// so implementations need no synchronization.
type Collector interface {
	AddExpandedNode()
	AddDepthLimitLeaf()
	AddTerminalLeaf()
	AddPrunedBranch(depth int)
	Metrics() Metrics
	Reset()
}

type collector struct {
	expanded   int
	depthLimit int
	terminal   int
	pruned     map[int]int
}

func NewCollector() Collector {
	return &collector{pruned: map[int]int{}}
}

func (c *collector) AddExpandedNode() {
	c.expanded++
}

func (c *collector) AddDepthLimitLeaf() {
	c.depthLimit++
}

func (c *collector) AddTerminalLeaf() {
	c.terminal++
}

func (c *collector) AddPrunedBranch(depth int) {
	c.pruned[depth]++
}

func (c *collector) Metrics() Metrics {
	pruned := make(map[int]int, len(c.pruned))
	for depth, count := range c.pruned {
		pruned[depth] = count
	}
	return Metrics{
		ExpandedNodes:    c.expanded,
		DepthLimitLeaves: c.depthLimit,
		TerminalLeaves:   c.terminal,
		PrunedBranches:   pruned,
	}
}

func (c *collector) Reset() {
	c.expanded = 0
	c.depthLimit = 0
	c.terminal = 0
	c.pruned = map[int]int{}
}

type dummyCollector struct{}

// NewDummyCollector returns a collector that counts nothing, for searches
// whose metrics nobody reads.
func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) AddExpandedNode()    {}
func (dummyCollector) AddDepthLimitLeaf()  {}
func (dummyCollector) AddTerminalLeaf()    {}
func (dummyCollector) AddPrunedBranch(int) {}
func (dummyCollector) Metrics() Metrics    { return Metrics{} }
func (dummyCollector) Reset()              {}
