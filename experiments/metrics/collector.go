package metrics

import (
	"sync"
	"sync/atomic"
)

// Collector gathers finished games from concurrently running workers.
type Collector interface {
	Add(result Result)
	AddAnomaly()
	Results() []Result
	Anomalies() int
}

type collector struct {
	mu        sync.Mutex
	results   []Result
	anomalies atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Add(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

// AddAnomaly counts a game that faulted outside the turn boundary and
// produced no record.
func (c *collector) AddAnomaly() {
	c.anomalies.Add(1)
}

// Results returns a copy in completion order.
func (c *collector) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func (c *collector) Anomalies() int {
	return int(c.anomalies.Load())
}

// Records extracts the game records of results.
func Records(results []Result) []GameRecord {
	records := make([]GameRecord, 0, len(results))
	for _, r := range results {
		records = append(records, r.Record)
	}
	return records
}
