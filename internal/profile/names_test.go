package profile

import "testing"

func TestSuggestName(t *testing.T) {
	for i := 0; i < 50; i++ {
		name, err := SuggestName()
		if err != nil {
			t.Fatalf("SuggestName: %v", err)
		}
		if name == "" {
			t.Fatal("empty suggestion")
		}
		if len(name) > MaxNameLength {
			t.Errorf("suggestion %q exceeds name cap", name)
		}
		if SanitizeName(name) != name {
			t.Errorf("suggestion %q does not survive sanitization", name)
		}
	}
}

func TestSuggestNameNounsFitCap(t *testing.T) {
	// The fallback when a pair is too long is the bare noun, so every noun
	// must fit on its own.
	for _, n := range nouns {
		if len(n) > MaxNameLength {
			t.Errorf("noun %q exceeds name cap", n)
		}
	}
}
