package syllabus

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/moduleid"
)

// Build translates decoded strand blocks into a Tree. Strands that are not
// declared keep their default label and have no topics.
func Build(blocks []*StrandBlock) (*Tree, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	tree := NewTree()
	seenTopics := make(map[string]Strand)

	for _, block := range blocks {
		strand := Strand(block.Key)
		if !strand.IsValid() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown strand",
				Detail:   fmt.Sprintf("strand %q is not one of %v", block.Key, Strands()),
			})
			continue
		}
		tree.SetStrandLabel(strand, block.Label)

		for _, tb := range block.Topics {
			if !moduleid.IsValidSegment(tb.Key) {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid topic key",
					Detail:   fmt.Sprintf("topic %q in strand %q must be lowercase kebab-case", tb.Key, block.Key),
				})
				continue
			}
			if owner, dup := seenTopics[tb.Key]; dup && owner != strand {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate topic",
					Detail:   fmt.Sprintf("topic %q is declared under both %q and %q", tb.Key, owner, strand),
				})
				continue
			}
			seenTopics[tb.Key] = strand
			tree.AddTopic(strand, &Topic{Key: tb.Key, Label: tb.Label, Subtopics: tb.Subtopics})
		}
	}

	return tree, diags
}

// LoadFile parses a standalone syllabus HCL file and builds its Tree.
func LoadFile(ctx context.Context, path string, evalCtx *hcl.EvalContext) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading syllabus file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse syllabus file %s: %w", path, diags)
	}
	return Decode(ctx, hclFile.Body, evalCtx, path)
}

// Parse builds a Tree from in-memory HCL source.
func Parse(ctx context.Context, src []byte, filename string, evalCtx *hcl.EvalContext) (*Tree, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse syllabus file %s: %w", filename, diags)
	}
	return Decode(ctx, hclFile.Body, evalCtx, filename)
}

// Decode reads strand blocks from an already parsed body. Content other than
// strand blocks is left alone, so the syllabus can share a file with other
// settings.
func Decode(ctx context.Context, body hcl.Body, evalCtx *hcl.EvalContext, name string) (*Tree, error) {
	var file File
	if diags := gohcl.DecodeBody(body, evalCtx, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode syllabus file %s: %w", name, diags)
	}

	tree, diags := Build(file.Strands)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid syllabus in %s: %w", name, diags)
	}

	ctxlog.FromContext(ctx).Debug("Syllabus loaded.", "file", name, "topics", tree.TopicCount())
	return tree, nil
}
