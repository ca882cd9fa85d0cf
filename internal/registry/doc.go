// Package registry maps the builder kind names used in geometry
// configuration (e.g., "onion_cryostat") to the compiled Go code that
// implements them: an option-struct factory carrying the kind's defaults and
// a constructor that turns a decoded option struct into a builder.
//
// Modules register their kinds at startup. The registry is then validated so
// that every option struct can be bound from configuration values, which
// turns a whole class of decoding failures into startup errors.
package registry
