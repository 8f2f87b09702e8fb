package navigation

import (
	"strings"

	"github.com/vk/mathviz/internal/syllabus"
)

// BreadcrumbType identifies the hierarchy level of a breadcrumb.
type BreadcrumbType string

const (
	CrumbStrand BreadcrumbType = "strand"
	CrumbTopic  BreadcrumbType = "topic"
	CrumbModule BreadcrumbType = "module"
)

// Breadcrumb is one element of the trail derived from the current position.
type Breadcrumb struct {
	Label string
	Path  string
	Type  BreadcrumbType
}

// Labeler supplies display labels for breadcrumbs.
type Labeler interface {
	StrandLabel(strand syllabus.Strand) string
	TopicLabel(topic string) string
	ModuleLabel(moduleID string) string
}

// PlainLabels uses the raw keys as labels.
type PlainLabels struct{}

func (PlainLabels) StrandLabel(s syllabus.Strand) string { return string(s) }
func (PlainLabels) TopicLabel(topic string) string       { return topic }
func (PlainLabels) ModuleLabel(id string) string         { return id }

// Breadcrumbs projects the current position onto a strand, topic, module
// trail, skipping empty levels. History is not consulted.
func (c *Controller) Breadcrumbs() []Breadcrumb {
	pos := c.Position()

	var (
		crumbs []Breadcrumb
		parts  []string
	)
	add := func(key, label string, typ BreadcrumbType) {
		parts = append(parts, key)
		crumbs = append(crumbs, Breadcrumb{
			Label: label,
			Path:  "/" + strings.Join(parts, "/"),
			Type:  typ,
		})
	}

	if pos.Strand != "" {
		add(string(pos.Strand), c.labels.StrandLabel(pos.Strand), CrumbStrand)
	}
	if pos.Topic != "" {
		add(pos.Topic, c.labels.TopicLabel(pos.Topic), CrumbTopic)
	}
	if pos.Module != "" {
		add(pos.Module, c.labels.ModuleLabel(pos.Module), CrumbModule)
	}
	return crumbs
}
