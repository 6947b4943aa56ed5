package app

import (
	"io"

	"github.com/specialistvlad/fnreg/internal/registry"
	"github.com/specialistvlad/fnreg/modules/counter"
	"github.com/specialistvlad/fnreg/modules/env"
	"github.com/specialistvlad/fnreg/modules/geom"
	"github.com/specialistvlad/fnreg/modules/httpclient"
	"github.com/specialistvlad/fnreg/modules/mathfn"
	"github.com/specialistvlad/fnreg/modules/print"
	"github.com/specialistvlad/fnreg/modules/strfn"
)

// coreModules is the definitive list of all modules that are compiled into
// the fnreg binary. print writes to the app's output.
func coreModules(outW io.Writer) []registry.Module {
	return []registry.Module{
		&mathfn.Module{},
		&strfn.Module{},
		&env.Module{},
		&counter.Module{},
		&geom.Module{},
		&httpclient.Module{},
		&print.Module{Out: outW},
	}
}
