package model

// RunTally holds the aggregate counters for one complete scan. A fresh tally
// is constructed per run; it is owned exclusively by the aggregator and is
// frozen once the summary is emitted.
type RunTally struct {
	Errors int `yaml:"errors"`
	Await  int `yaml:"await"`
	Async  int `yaml:"async"`
}

// AddMatch increments the counter for the matched keyword.
func (t *RunTally) AddMatch(keyword Keyword) {
	switch keyword {
	case KeywordAwait:
		t.Await++
	case KeywordAsync:
		t.Async++
	}
}

// AddFailure increments the error counter.
func (t *RunTally) AddFailure() {
	t.Errors++
}
