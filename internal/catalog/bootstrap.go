package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/mathviz/internal/ctxlog"
	"github.com/vk/mathviz/internal/descriptor"
)

// Module is the interface that every visualization module implements to be
// registered. Register is called exactly once, by Bootstrap.
type Module interface {
	Register(ctx context.Context, c *Catalog) *RegistrationResult
}

// Bootstrap registers modules in the given order. A rejected module does not
// stop the others; all rejections are gathered into the returned error.
func Bootstrap(ctx context.Context, c *Catalog, modules ...Module) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Bootstrapping module catalog.", "count", len(modules))

	var errs []string
	for i, mod := range modules {
		if mod == nil {
			errs = append(errs, fmt.Sprintf("module #%d is nil", i))
			continue
		}
		res := mod.Register(ctx, c)
		if err := res.Err(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	logger.Info("Module catalog ready.", "registered", c.Len(), "rejected", len(errs))
	if len(errs) > 0 {
		return fmt.Errorf("module registration failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// DescriptorModule is a Module backed by a descriptor constructor. It lets
// a package expose its module without a dedicated type.
type DescriptorModule struct {
	New func() *descriptor.Descriptor
}

// Register implements Module.
func (m DescriptorModule) Register(ctx context.Context, c *Catalog) *RegistrationResult {
	var d *descriptor.Descriptor
	if m.New != nil {
		d = m.New()
	}
	return c.Register(ctx, d)
}
