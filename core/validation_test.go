package core

import (
	"errors"
	"testing"
)

func TestValidateApplication(t *testing.T) {
	tests := []struct {
		name    string
		app     Application
		wantErr error
	}{
		{
			name: "valid application",
			app:  Application{DisplayName: "Gmail", Identifier: "com.google.gmail", Target: "gmail"},
		},
		{
			name: "target is optional",
			app:  Application{DisplayName: "Gmail", Identifier: "com.google.gmail"},
		},
		{
			name:    "empty identifier",
			app:     Application{DisplayName: "Gmail"},
			wantErr: ErrEmptyIdentifier,
		},
		{
			name:    "blank identifier",
			app:     Application{DisplayName: "Gmail", Identifier: "   "},
			wantErr: ErrEmptyIdentifier,
		},
		{
			name:    "empty display name",
			app:     Application{Identifier: "com.google.gmail"},
			wantErr: ErrEmptyDisplayName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateApplication(tt.app)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateApplication() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidApplication) {
				t.Errorf("ValidateApplication() error = %v, want ErrInvalidApplication", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateApplication() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
