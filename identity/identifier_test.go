package identity

import "testing"

func TestIdentifierString(t *testing.T) {
	tests := []struct {
		name string
		id   Identifier
		want string
	}{
		{"named curie", NewNamed("WormBase:WBGene00001908"), "WormBase:WBGene00001908"},
		{"synthesized key", NewSynthesized("WBGene00001908-WBRNAi00025129"), "_:WBGene00001908-WBRNAi00025129"},
		{"zero value", Identifier{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentifierIsZero(t *testing.T) {
	if !(Identifier{}).IsZero() {
		t.Error("zero identifier should report IsZero")
	}
	if NewNamed("PMID:8805").IsZero() {
		t.Error("named identifier should not report IsZero")
	}
}

func TestDigest(t *testing.T) {
	a := Digest("patient_1-intrinsic-genotype")
	b := Digest("patient_1-intrinsic-genotype")
	if a != b {
		t.Errorf("same seed produced different keys: %q vs %q", a, b)
	}
	if a == Digest("patient_2-intrinsic-genotype") {
		t.Error("different seeds should produce different keys")
	}
	if len(a) != 17 {
		t.Errorf("key length = %d, want 17", len(a))
	}
	if a[0] != 'b' {
		t.Errorf("key should start with 'b', got %q", a)
	}
}
