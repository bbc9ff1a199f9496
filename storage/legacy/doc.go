// Package legacy reads the per-feature preference namespaces written by
// earlier launcher releases, one TOML file per namespace.
//
// Legacy files are only ever read, cleared and deleted; new writes go to the
// unified namespace. The value kind of each key is inferred from its TOML type:
//
//	bool             -> storage.KindBool
//	float            -> storage.KindFloat
//	integer (32-bit) -> storage.KindInt
//	integer (wider)  -> storage.KindLong
//	string           -> storage.KindString
//	array of strings -> storage.KindStringSet
//
// Keys with other TOML types (tables, dates, mixed arrays) are skipped with a
// warning.
package legacy
