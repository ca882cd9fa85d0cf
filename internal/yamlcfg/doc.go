// Package yamlcfg loads geometry configurations written in YAML. The grammar
// mirrors the HCL one: a top-level `world` and a list of `builders`, each with
// kind, name, subbuilders, slots and options. Option values become cty values
// so the same converter binds them regardless of the source format.
package yamlcfg
