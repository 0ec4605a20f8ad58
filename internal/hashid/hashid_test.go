package hashid

import "testing"

func TestEncodeDecodeRoundtrip(t *testing.T) {
	c, err := NewCodec("test-salt", 8)
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []int64{1, 42, 987654321} {
		code, err := c.Encode(id)
		if err != nil {
			t.Fatalf("Encode(%d): %v", id, err)
		}
		if len(code) < 8 {
			t.Errorf("code %q shorter than configured minimum", code)
		}

		got, err := c.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%q): %v", code, err)
		}
		if got != id {
			t.Errorf("roundtrip %d -> %q -> %d", id, code, got)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c, err := NewCodec("test-salt", 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode("!!not-a-code!!"); err == nil {
		t.Error("expected an error for a malformed code")
	}
}

func TestDifferentSaltsDiffer(t *testing.T) {
	a, _ := NewCodec("salt-a", 8)
	b, _ := NewCodec("salt-b", 8)

	codeA, _ := a.Encode(42)
	if got, err := b.Decode(codeA); err == nil && got == 42 {
		t.Error("codes must not decode across salts")
	}
}
