package qgrover

import (
	"sort"
)

// Counts tallies measured bitstrings.
type Counts struct {
	Total       int
	Frequencies map[string]int
}

// Tally counts every bitstring in memory.
func Tally(memory []string) *Counts {
	c := &Counts{Frequencies: make(map[string]int)}
	for _, outcome := range memory {
		c.Frequencies[outcome]++
		c.Total++
	}
	return c
}

func (c *Counts) Frequency(outcome string) int {
	return c.Frequencies[outcome]
}

// Probability is the observed share of shots that produced outcome.
func (c *Counts) Probability(outcome string) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Frequencies[outcome]) / float64(c.Total)
}

// Outcomes lists the observed bitstrings in ascending order.
func (c *Counts) Outcomes() []string {
	out := make([]string, 0, len(c.Frequencies))
	for outcome := range c.Frequencies {
		out = append(out, outcome)
	}
	sort.Strings(out)
	return out
}

// Mode is the most frequent outcome. Ties go to the lowest bitstring.
func (c *Counts) Mode() string {
	mode, best := "", -1
	for _, outcome := range c.Outcomes() {
		if n := c.Frequencies[outcome]; n > best {
			mode, best = outcome, n
		}
	}
	return mode
}

// Export flattens the tally for logging.
func (c *Counts) Export() map[string]interface{} {
	return map[string]interface{}{
		"total":       c.Total,
		"distinct":    len(c.Frequencies),
		"mode":        c.Mode(),
		"frequencies": c.Frequencies,
	}
}
