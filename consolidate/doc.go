// Package consolidate merges legacy per-feature namespaces into the
// unified namespace, once per installation.
//
// The unified namespace carries a completion flag. While it is unset, Run
// copies every key of each legacy namespace that still exists, then clears
// and deletes that namespace. The flag is committed only after every legacy
// namespace has been handled, so an interrupted run is finished by the next
// one: namespaces already deleted are skipped and the rest are copied again.
// Keys with the same name in several legacy namespaces end up with the value
// from the last namespace in the list.
package consolidate
