// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses geometry files, evaluates option expressions against
// an evaluation context that knows physical units, and translates builder
// blocks into the format-agnostic model.
package hcl
