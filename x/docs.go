/*
Package x contains the extensions of the escrow host.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in app to construct the
application. x/escrow holds the delivery escrow itself, the
remaining packages provide what it consumes: signature
authentication (x/sigs), value transfer (x/bank) and the
transaction pipeline (x/utils).

Note that types in exported code will be prefixed by the package, so
follow standard go naming conventions and avoid stutter. Use eg.
`escrow.CreateMsg` in place of `escrow.CreateEscrowMsg`.
*/
package x
