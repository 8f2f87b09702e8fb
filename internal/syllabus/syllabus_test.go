package syllabus

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

func TestStrands_ClosedSetOfSix(t *testing.T) {
	all := Strands()
	require.Len(t, all, 6)
	for _, s := range all {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Strand("geometry").IsValid())
	assert.Equal(t, "geometry", Strand("geometry").DefaultLabel())
}

func TestNewTree_DefaultLabels(t *testing.T) {
	tree := NewTree()

	assert.Equal(t, "Probability and Statistics", tree.StrandLabel(ProbabilityStatistics))
	assert.Equal(t, "unknown-topic", tree.TopicLabel("unknown-topic"))
	assert.Zero(t, tree.TopicCount())
}

func TestParse_BuildsTree(t *testing.T) {
	src := `
strand "vectors" {
  label = "Vectors in 3D"

  topic "dot-cross-product" {
    label     = upper("dot and cross")
    subtopics = ["projection", "area"]
  }
  topic "lines-planes" {}
}

strand "calculus" {
  topic "integration" {
    label = "Integration (${app_name})"
  }
}
`
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"app_name": cty.StringVal("mathviz")},
		Functions: map[string]function.Function{
			"upper": stdlib.UpperFunc,
		},
	}

	tree, err := Parse(context.Background(), []byte(src), "syllabus.hcl", evalCtx)
	require.NoError(t, err)

	assert.Equal(t, "Vectors in 3D", tree.StrandLabel(Vectors))
	assert.Equal(t, "Calculus", tree.StrandLabel(Calculus))
	assert.Equal(t, "DOT AND CROSS", tree.TopicLabel("dot-cross-product"))
	assert.Equal(t, "lines-planes", tree.TopicLabel("lines-planes"))
	assert.Equal(t, "Integration (mathviz)", tree.TopicLabel("integration"))

	topics := tree.Topics(Vectors)
	require.Len(t, topics, 2)
	assert.Equal(t, "dot-cross-product", topics[0].Key)
	assert.Equal(t, []string{"projection", "area"}, topics[0].Subtopics)
	assert.True(t, tree.HasTopic(Vectors, "lines-planes"))
	assert.False(t, tree.HasTopic(Calculus, "lines-planes"))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "unknown strand",
			src:     `strand "geometry" {}`,
			wantErr: "Unknown strand",
		},
		{
			name:    "invalid topic key",
			src:     `strand "vectors" { topic "Dot Product" {} }`,
			wantErr: "Invalid topic key",
		},
		{
			name: "topic declared under two strands",
			src: `
strand "vectors" { topic "shared" {} }
strand "calculus" { topic "shared" {} }
`,
			wantErr: "Duplicate topic",
		},
		{
			name:    "syntax error",
			src:     `strand "vectors" {`,
			wantErr: "failed to parse",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tc.src), "bad.hcl", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestTree_AddTopicRelabelsExisting(t *testing.T) {
	tree := NewTree()
	require.True(t, tree.AddTopic(Calculus, &Topic{Key: "limits"}))
	require.True(t, tree.AddTopic(Calculus, &Topic{Key: "limits", Label: "Limits"}))

	assert.Len(t, tree.Topics(Calculus), 1)
	assert.Equal(t, "Limits", tree.TopicLabel("limits"))
	assert.False(t, tree.AddTopic(Strand("geometry"), &Topic{Key: "x"}))
}
