/*
Package builder defines the contract between the assembly engine and the
builder kinds that produce geometry, and the per-instance lifecycle that
guards it.

A builder instance moves through three states:

 1. Created: the engine has found a registered kind for the configured name.

 2. Configured: the kind's option struct has been decoded and validated and
    the instance holds a Builder bound to it. Sub-builders and named slots
    are bound in this state.

 3. Constructed: Build has run exactly once and the produced volumes are
    frozen. A parent may only read a sub-builder's volumes from here on.

Build receives a *Context scoped to the instance. The context resolves
sub-builders by position or slot role, derives unique shape, volume and
placement names from the instance name, and registers everything it creates
in the caller's geostore.Store so the exporter can find it later.
*/
package builder
