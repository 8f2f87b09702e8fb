package catalog

import (
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/syllabus"
)

// UnknownDifficulty is the ByDifficulty bucket for modules without a
// declared difficulty.
const UnknownDifficulty = "unknown"

// Stats summarizes the catalog contents.
type Stats struct {
	TotalModules int
	ByStrand     map[syllabus.Strand]int
	ByEngine     map[descriptor.Engine]int
	ByDifficulty map[string]int
}

// GetStats counts modules in total and grouped by strand, render engine
// and difficulty.
func (c *Catalog) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		TotalModules: len(c.modules),
		ByStrand:     make(map[syllabus.Strand]int),
		ByEngine:     make(map[descriptor.Engine]int),
		ByDifficulty: make(map[string]int),
	}
	for _, d := range c.modules {
		stats.ByStrand[d.Strand()]++
		stats.ByEngine[d.Engine]++

		difficulty := UnknownDifficulty
		if d.Metadata != nil && d.Metadata.Difficulty != "" {
			difficulty = string(d.Metadata.Difficulty)
		}
		stats.ByDifficulty[difficulty]++
	}
	return stats
}

// Tags returns every tag that at least one module carries, sorted.
func (c *Catalog) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byTag.keys()
}

// Topics returns every topic that at least one module is placed in, sorted.
func (c *Catalog) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byTopic.keys()
}
