// Package spec defines the typed addressing scheme for recording sessions
// stored under the fixed directory convention
// root/dataset/subject/session/domain/file.
//
// Callers describe which part of the hierarchy they mean with a Predicate, a
// six-axis coordinate tuple. Each axis is a closed variant (unspecified, a
// literal, a finite collection, or a dynamic selector), and the selection
// status of the whole tuple determines whether it resolves to zero, one, many,
// or a computed set of filesystem entities. Only a single-entity predicate
// yields a concrete path.
//
// All types in this package are value objects: they are validated eagerly at
// construction, never mutated afterwards, and updated by copy-with-overrides
// methods. They perform no filesystem access.
package spec
