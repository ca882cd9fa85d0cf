// Package config defines the format-agnostic geometry configuration model,
// along with the core interfaces (Loader, Converter) for loading it from
// files and binding builder options onto Go option structs.
//
// The `config.Model` is the single source of truth for the engine. Concrete
// loaders for HCL and YAML live in their own packages and all produce the
// same model, so a geometry may be split across files of either format.
package config
