package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/syllabus"
)

// Settings is the decoded content of a settings file.
type Settings struct {
	HistoryLimit   int
	StorePath      string
	LuaModulesPath string
	Syllabus       *syllabus.Tree
}

type settingsFile struct {
	Settings *settingsBlock `hcl:"settings,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

type settingsBlock struct {
	HistoryLimit *int    `hcl:"history_limit,optional"`
	Store        *string `hcl:"store,optional"`
	LuaModules   *string `hcl:"lua_modules,optional"`
}

// evalContext is the context settings expressions are evaluated in.
func evalContext() *hcl.EvalContext {
	strands := make([]cty.Value, 0, len(syllabus.Strands()))
	for _, s := range syllabus.Strands() {
		strands = append(strands, cty.StringVal(string(s)))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"app_name": cty.StringVal(AppName),
			"strands":  cty.ListVal(strands),
		},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}

// LoadSettings reads a settings file. Relative paths inside it are resolved
// against the file's directory.
func LoadSettings(ctx context.Context, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading settings file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	evalCtx := evalContext()
	var raw settingsFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}

	tree, err := syllabus.Decode(ctx, raw.Remain, evalCtx, path)
	if err != nil {
		return nil, err
	}

	out := &Settings{Syllabus: tree}
	if b := raw.Settings; b != nil {
		dir := filepath.Dir(path)
		if b.HistoryLimit != nil {
			if *b.HistoryLimit < 1 {
				return nil, fmt.Errorf("invalid settings file %s: history_limit must be at least 1, got %d", path, *b.HistoryLimit)
			}
			out.HistoryLimit = *b.HistoryLimit
		}
		if b.Store != nil && *b.Store != "" {
			out.StorePath = resolvePath(dir, *b.Store)
		}
		if b.LuaModules != nil && *b.LuaModules != "" {
			out.LuaModulesPath = resolvePath(dir, *b.LuaModules)
		}
	}

	logger.Debug("Settings loaded.", "history_limit", out.HistoryLimit, "store", out.StorePath, "lua_modules", out.LuaModulesPath)
	return out, nil
}

// apply fills the fields of cfg that were left unset.
func (s *Settings) apply(cfg *Config) {
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = s.HistoryLimit
	}
	if cfg.StorePath == "" {
		cfg.StorePath = s.StorePath
	}
	if cfg.LuaModulesPath == "" {
		cfg.LuaModulesPath = s.LuaModulesPath
	}
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
