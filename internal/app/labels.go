package app

import (
	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/internal/syllabus"
)

// labels names breadcrumbs from the syllabus tree and module names from the
// catalog.
type labels struct {
	tree    *syllabus.Tree
	catalog *catalog.Catalog
}

func (l labels) StrandLabel(s syllabus.Strand) string { return l.tree.StrandLabel(s) }

func (l labels) TopicLabel(topic string) string { return l.tree.TopicLabel(topic) }

func (l labels) ModuleLabel(id string) string {
	if d, ok := l.catalog.Get(id); ok && d.Name != "" {
		return d.Name
	}
	return id
}
