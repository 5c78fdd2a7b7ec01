package profile

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain name",
			raw:  "Ada",
			want: "Ada",
		},
		{
			name: "strips punctuation",
			raw:  "A!d@a#",
			want: "A d a",
		},
		{
			name: "collapses whitespace",
			raw:  "  Ada   Lovelace  ",
			want: "Ada Lovelace",
		},
		{
			name: "empty falls back",
			raw:  "",
			want: "Player",
		},
		{
			name: "symbols only fall back",
			raw:  "!!!",
			want: "Player",
		},
		{
			name: "caps length",
			raw:  "Abcdefghijklmnopqrstuvwxyz",
			want: "Abcdefghijklmnop",
		},
		{
			name: "cap does not leave trailing space",
			raw:  "Abcdefghijklmno pqr",
			want: "Abcdefghijklmno",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.raw); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeNameIdempotent(t *testing.T) {
	inputs := []string{"Ada", "  Ada  Lovelace!! ", "Abcdefghijklmno pqr", "", "🦊🦊"}
	for _, raw := range inputs {
		once := SanitizeName(raw)
		twice := SanitizeName(once)
		if once != twice {
			t.Errorf("SanitizeName not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "lowercases and dashes",
			raw:  "Ada Lovelace",
			want: "ada-lovelace",
		},
		{
			name: "empty falls back",
			raw:  "",
			want: "player",
		},
		{
			name: "punctuation collapses",
			raw:  "A  da",
			want: "a-da",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveID(tt.raw); got != tt.want {
				t.Errorf("DeriveID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDeriveIDDeterminism(t *testing.T) {
	// Names that sanitize to the same string must derive the same id, so a
	// rename to a colliding name merges instead of duplicating.
	pairs := [][2]string{
		{"Ada Lovelace", "ada   lovelace"},
		{"Max!", "max"},
		{"  Sam  ", "sam"},
	}
	for _, pair := range pairs {
		a, b := DeriveID(pair[0]), DeriveID(pair[1])
		if a != b {
			t.Errorf("DeriveID(%q) = %q but DeriveID(%q) = %q", pair[0], a, pair[1], b)
		}
	}
}

func TestAvatarForID(t *testing.T) {
	for _, id := range []string{"ada-lovelace", "max", "player", "x"} {
		avatar := AvatarForID(id)
		if !ValidAvatar(avatar) {
			t.Errorf("AvatarForID(%q) = %q not in palette", id, avatar)
		}
		if avatar != AvatarForID(id) {
			t.Errorf("AvatarForID(%q) not deterministic", id)
		}
	}
}

func TestValidAvatar(t *testing.T) {
	if !ValidAvatar(Avatars[0]) {
		t.Error("palette avatar rejected")
	}
	if ValidAvatar("🚀") {
		t.Error("non-palette avatar accepted")
	}
	if ValidAvatar("") {
		t.Error("empty avatar accepted")
	}
}

func TestScopedKey(t *testing.T) {
	got := ScopedKey("ada", "fractions_compare_best_v1")
	want := ScopePrefix + "ada::fractions_compare_best_v1"
	if got != want {
		t.Errorf("ScopedKey() = %q, want %q", got, want)
	}
}
