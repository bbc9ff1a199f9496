// Package membership persists named sets of application identifiers.
//
// A Store keeps one set under a single key of a storage.Namespace,
// serialized as a JSON array of identifier strings. The set is loaded
// lazily on first access and cached; every mutation writes the new array
// and commits it before the cache is replaced, so the cache never holds
// anything the namespace does not.
//
// Caches are private to a Store. Two Stores over the same key can diverge,
// so each set should have exactly one Store per process. Sets builds the
// launcher's three sets once for injection everywhere they are needed.
package membership
