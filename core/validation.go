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


package core

import (
	"fmt"
	"strings"
)

// ValidateApplication validates an Application according to domain rules.
//
// Validation rules:
//   - Identifier must not be empty or blank
//   - DisplayName must not be empty or blank
//
// NOT validated:
//   - Target (opaque to launchkit, the host decides what it means)
//   - Identifier uniqueness (checked per snapshot by the directory)
func ValidateApplication(app Application) error {
	if strings.TrimSpace(app.Identifier) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidApplication, ErrEmptyIdentifier)
	}

	if strings.TrimSpace(app.DisplayName) == "" {
		return fmt.Errorf("%w: %w (identifier %q)", ErrInvalidApplication, ErrEmptyDisplayName, app.Identifier)
	}

	return nil
}
