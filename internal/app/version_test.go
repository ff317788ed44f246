package app

import "testing"

func TestIsVersionCompatible(t *testing.T) {
	tests := []struct {
		version, min string
		want         bool
	}{
		{"1.0.0", "1.0.0", true},
		{"1.2.0", "1.1.9", true},
		{"2.0.0", "1.9.9", true},
		{"1.0.1", "1.0.2", false},
		{"0.9.0", "1.0.0", false},
		{"1.1", "1.0.5", true},
	}
	for _, tt := range tests {
		if got := isVersionCompatible(tt.version, tt.min); got != tt.want {
			t.Errorf("isVersionCompatible(%q, %q) = %v, want %v", tt.version, tt.min, got, tt.want)
		}
	}
}

func TestValidateModuleVersions(t *testing.T) {
	if err := validateModuleVersions(moduleVersions()); err != nil {
		t.Fatalf("shipped modules incompatible: %v", err)
	}
	err := validateModuleVersions(map[string]moduleVersion{"old": {"0.1.0", "1.0.0"}})
	if err == nil {
		t.Error("validateModuleVersions() accepted an outdated module")
	}
}
