package services

import "sort"

// orderedCounter counts string keys while remembering first-encounter
// order, so ranking ties always resolve the same way for the same input.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) Count(key string) int {
	return c.counts[key]
}

func (c *orderedCounter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

func (c *orderedCounter) Unique() int {
	return len(c.counts)
}

// sortedKeys returns the map's keys in alphabetical order, so loops that
// pick a "most X" user resolve ties the same way on every run.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type keyCount struct {
	Key   string
	Count int
}

// MostCommon returns up to n entries sorted by count descending. Equal
// counts keep first-encounter order. n < 0 returns all entries.
func (c *orderedCounter) MostCommon(n int) []keyCount {
	ranked := make([]keyCount, 0, len(c.order))
	for _, key := range c.order {
		ranked = append(ranked, keyCount{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
