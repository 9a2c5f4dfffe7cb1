// Package keystore provides the polymorphic, mutex-guarded key store
// consulted directly by the dispatch core's key-store shim, per
// spec.md's "Polymorphism over the key store" design note.
package keystore
