package app

import (
	"github.com/specialistvlad/ledgrid/internal/registry"
	"github.com/specialistvlad/ledgrid/modules/color"
	"github.com/specialistvlad/ledgrid/modules/comment"
	"github.com/specialistvlad/ledgrid/modules/loop"
	"github.com/specialistvlad/ledgrid/modules/testmod"
)

// coreModules is the definitive list of all modules that are compiled into
// the ledgrid binary.
var coreModules = []registry.Module{
	&color.Module{},
	&loop.Module{},
	&comment.Module{},
	&testmod.Module{},
}
