package registry

import (
	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/erased"
)

// Handle is a short-lived accessor for one table entry, returned by Register.
// It does not own the entry and should not be kept once registration is done.
type Handle struct {
	table *Table
	entry *entry
}

// Name returns the name the handle was registered under.
func (h *Handle) Name() string {
	return h.entry.name
}

// SetBody installs f as the entry's body, replacing any previous body, and
// returns h so further calls can be chained. The last body set wins.
func (h *Handle) SetBody(f erased.Func) *Handle {
	return h.install(f, RawSignature)
}

// SetAdaptedBody installs an adapted native callable and records its native
// signature.
func (h *Handle) SetAdaptedBody(b adapt.Body) *Handle {
	return h.install(b.Func(), b.Signature())
}

func (h *Handle) install(f erased.Func, signature string) *Handle {
	h.table.mu.Lock()
	defer h.table.mu.Unlock()

	h.entry.body = f
	h.entry.signature = signature
	return h
}
