package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	if err := os.WriteFile(path, []byte("mandatory_penalty_factor: 7.5\n"), 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}

	p, err := LoadPolicyFile(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.MandatoryPenaltyFactor != 7.5 {
		t.Fatalf("expected 7.5, got %v", p.MandatoryPenaltyFactor)
	}
}

func TestLoadPolicyFile_DefaultsWhenUnset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}

	p, err := LoadPolicyFile(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.MandatoryPenaltyFactor != defaultMandatoryPenaltyFactor {
		t.Fatalf("expected default factor, got %v", p.MandatoryPenaltyFactor)
	}
}

func TestLoadPolicyFile_Missing(t *testing.T) {
	if _, err := LoadPolicyFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
