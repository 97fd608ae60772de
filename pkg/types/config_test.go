package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty driver returns ErrDriverEmpty",
			config:  Config{Driver: "", Database: "laptopdoctor"},
			wantErr: ErrDriverEmpty,
		},
		{
			name:    "unknown driver returns ErrDriverUnknown",
			config:  Config{Driver: "postgres", Database: "laptopdoctor"},
			wantErr: ErrDriverUnknown,
		},
		{
			name:    "mysql without database returns ErrDatabaseEmpty",
			config:  Config{Driver: DriverMySQL, Host: "localhost"},
			wantErr: ErrDatabaseEmpty,
		},
		{
			name:    "valid mysql config",
			config:  Config{Driver: DriverMySQL, Host: "localhost", User: "root", Database: "laptopdoctor"},
			wantErr: nil,
		},
		{
			name:    "sqlite with empty database is valid at config level",
			config:  Config{Driver: DriverSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
