// Package ir provides core GTIRB intermediate representation types.
//
// Every IR element is a [Node] identified by a UUID. A [Registry] maps UUIDs
// back to nodes so that serialized references, such as a [Symbol] referent,
// can be resolved when decoding. [ImageByteMap] holds the sparse contents of
// a loaded image.
//
// Types in this package are not safe for concurrent mutation unless stated
// otherwise.
package ir
