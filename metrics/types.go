// Package metrics computes per-node coupling, instability, abstractness,
// and distance-from-main-sequence, rolled up to per-module and
// crate-level aggregates including the top-10 lists.
package metrics

// NodeMetrics is the per-node metrics row.
type NodeMetrics struct {
	NodeID       string  `json:"nodeId"`
	Ca           int     `json:"ca"`
	Ce           int     `json:"ce"`
	Instability  float64 `json:"instability"`
	Abstractness float64 `json:"abstractness"`
	Distance     float64 `json:"distance"`
	FanIn        int     `json:"fanIn"`
	FanOut       int     `json:"fanOut"`
	LinesOfCode  int     `json:"linesOfCode"`
	Complexity   int     `json:"complexity"`
	InCycle      bool    `json:"inCycle"`
	CycleID      *int    `json:"cycleId,omitempty"`
}

// ModuleMetrics extends NodeMetrics with the module-only aggregates.
// Abstractness and distance are recomputed from the module's own
// trait-to-type ratio rather than the single-node formula.
type ModuleMetrics struct {
	NodeMetrics
	TotalTypes     int `json:"totalTypes"`
	TotalTraits    int `json:"totalTraits"`
	TotalFunctions int `json:"totalFunctions"`
	PublicItems    int `json:"publicItems"`
	PrivateItems   int `json:"privateItems"`
}

// TopLists holds the crate-level top-10 rankings, restricted to
// non-module nodes, structured as its own type rather than loose fields
// so report can render each list directly.
type TopLists struct {
	MostCoupled     []string `json:"mostCoupled"`
	MostUnstable    []string `json:"mostUnstable"`
	HighestDistance []string `json:"highestDistance"`
}

// CrateMetrics is the crate-level rollup: totals, averages across
// modules, and the top-10 lists.
type CrateMetrics struct {
	TotalModules        int      `json:"totalModules"`
	TotalTypesAndTraits int      `json:"totalTypesAndTraits"`
	TotalFunctions      int      `json:"totalFunctions"`
	TotalLines          int      `json:"totalLines"`
	AverageInstability  float64  `json:"averageInstability"`
	AverageAbstractness float64  `json:"averageAbstractness"`
	AverageDistance     float64  `json:"averageDistance"`
	CycleCount          int      `json:"cycleCount"`
	Top                 TopLists `json:"top"`
}

// Report is the full output of the Metrics Engine.
type Report struct {
	Crate   CrateMetrics             `json:"crate"`
	Modules map[string]ModuleMetrics `json:"modules"`
	Nodes   map[string]NodeMetrics   `json:"nodes"`
}
