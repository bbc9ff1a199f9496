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


package consolidate

import "errors"

var (
	// ErrUnifiedRequired indicates that no unified namespace was provided.
	ErrUnifiedRequired = errors.New("unified namespace is required")

	// ErrSourceRequired indicates that no legacy source was provided.
	ErrSourceRequired = errors.New("legacy source is required")

	// ErrUnifiedIsLegacy indicates that the unified namespace is also listed
	// as a legacy namespace, which would delete it after copying.
	ErrUnifiedIsLegacy = errors.New("unified namespace listed as legacy")
)
