// Package registry provides the named function table: the place where natively
// typed Go functions are published under a string name and later found and
// invoked through the uniform erased.Func calling convention.
//
// A Table is an explicit object; callers that want the process-wide table use
// Global, which is created on first use and lives until the process exits.
//
// Registration is a two-step, chainable expression. Register (or its Must
// forms) creates the entry and returns a Handle, and the Handle installs the
// body:
//
//	t.MustRegister("math.add").SetAdaptedBody(adapt.Func2(add))
//
// Every table operation, including installing a body through a Handle, is
// serialized by a single table-wide mutex held for the whole operation.
// Registered bodies are invoked outside that lock, so a body may call back
// into the table.
package registry
