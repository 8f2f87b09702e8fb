package app

import (
	"github.com/vk/mathviz/internal/catalog"
	"github.com/vk/mathviz/modules/dotproduct"
	"github.com/vk/mathviz/modules/permutation"
	"github.com/vk/mathviz/modules/riemann"
)

// coreModules is the definitive, ordered list of modules compiled into the
// mathviz binary. Each is registered exactly once at startup.
var coreModules = []catalog.Module{
	&permutation.Module{},
	&dotproduct.Module{},
	&riemann.Module{},
}
