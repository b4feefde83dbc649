package core

// EMA is an exponential moving average, ported directly from the teacher's
// sat/avg.go: used to track the conflict-clause LBD trend without
// keeping the whole history (spec.md §9's scratch-buffer philosophy — O(1)
// stats, no I/O performed from this package).
type EMA struct {
	decay float64
	value float64
	init  bool
}

// NewEMA returns an EMA with the given decay factor, in (0, 1).
func NewEMA(decay float64) EMA {
	return EMA{decay: decay}
}

// Add folds x into the running average.
func (ema *EMA) Add(x float64) {
	if !ema.init {
		ema.init = true
		ema.value = x
	} else {
		ema.value = ema.decay*ema.value + x*(1-ema.decay)
	}
}

// Val returns the current average.
func (ema *EMA) Val() float64 {
	return ema.value
}

// Stats is a point-in-time, allocation-free snapshot of the solver's
// search progress. The core never formats or prints one of these — per
// SPEC_FULL.md's ambient-stack notes, that's cmd/mcsat's job, using zap.
type Stats struct {
	Conflicts    int64
	Restarts     int64
	Decisions    int64
	Propagations int64
	Learnts      int
	Constraints  int
	Terms        int
	LBDAverage   float64
	Level        int
}

// Snapshot reports the solver's current Stats.
func (s *Solver) Snapshot() Stats {
	return Stats{
		Conflicts:    s.TotalConflicts,
		Restarts:     s.TotalRestarts,
		Decisions:    s.TotalDecisions,
		Propagations: s.TotalIterations,
		Learnts:      s.NumLearnts(),
		Constraints:  s.NumConstraints(),
		Terms:        s.NumTerms(),
		LBDAverage:   s.lbdEMA.Val(),
		Level:        s.decisionLevel(),
	}
}
