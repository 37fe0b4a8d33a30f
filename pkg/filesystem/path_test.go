package filesystem

import (
	"path/filepath"
	"testing"
)

func TestSafePath(t *testing.T) {
	tests := []struct {
		name     string
		baseDir  string
		filename string
		wantErr  bool
	}{
		{"identity file in base dir", "/var/lib/node", "node1_identity.json", false},
		{"encrypted key in base dir", "/var/lib/node", "node1_private.key.age", false},
		{"subdirectory allowed", "/var/lib/node", "keys/node1_private.key", false},
		{"traversal rejected", "/var/lib/node", "../../../etc/passwd", true},
		{"traversal after clean rejected", "/var/lib/node", "keys/../../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafePath(tt.baseDir, tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SafePath(%q, %q) error = %v, wantErr %v", tt.baseDir, tt.filename, err, tt.wantErr)
			}
			if err == nil && got != filepath.Join(tt.baseDir, tt.filename) {
				t.Errorf("SafePath(%q, %q) = %q", tt.baseDir, tt.filename, got)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative envelope file", "envelope.json", false},
		{"nested path", "out/envelope.json", false},
		{"absolute path", "/tmp/envelope.json", false},
		{"traversal rejected", "../../../etc/passwd", true},
		{"traversal after clean rejected", "out/../../secrets", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateFilePath(tt.path); (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
