// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the persistent key-value abstraction for launchkit.
//
// This package defines the Store, Namespace and Editor interfaces that decouple
// the membership stores, the consolidator and the preference accessors from the
// concrete backend. The unified namespace is served by the BadgerDB backend in
// storage/badger; legacy per-feature namespaces may come from the same database
// or from TOML files handled by storage/legacy.
//
// # Architecture
//
//   - Store: a collection of named namespaces with existence checks and deletion
//   - Namespace: typed reads with defaults, plus Edit for writes
//   - Editor: buffered writes applied atomically by Commit
//   - Value: tagged union over bool, float, int, long, string and string-set
//
// # Usage
//
//	store, err := badger.OpenStore("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	prefs := store.Namespace("prefs")
//	err = prefs.Edit().PutBool("search_shows_hidden", true).Commit(ctx)
//
// # Absence
//
// Reads never fail because a key or namespace is missing; the caller's default
// is returned instead. A stored value of a different kind is treated the same
// way, except that Long reads accept Int values. Only backend failures produce
// errors.
//
// # Encoding
//
// Backends persist a Value as one kind byte followed by the MUS encoding of
// its payload (mus-go ord, varint and raw serializers). Identifier lists are
// JSON arrays stored as string values.
package storage
