package names

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "_"},
		{"web-1", "web_1"},
		{"Web-1", "web_1"},
		{"A B", "a_b"},
		{"A  B", "a__b"}, // runs are NOT collapsed
		{"Ubuntu 24.04 (LTS) x64", "ubuntu_24_04__lts__x64"},
		{"pvc-8a9f2c", "pvc_8a9f2c"},
		{"already_clean_9", "already_clean_9"},
		{"ALLCAPS", "allcaps"},
		{"trailing-", "trailing_"},
		{"-leading", "_leading"},
		// Each byte of a multi-byte rune becomes its own underscore.
		{"café", "caf__"},
	}

	for _, test := range tests {
		if got := Sanitize(test.input); got != test.want {
			t.Errorf("Sanitize(%q) = %q; want %q", test.input, got, test.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"", "Web-1", "A  B", "Ubuntu 24.04 (LTS) x64", "café"}
	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize is not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestSanitizeDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if got := Sanitize("Web-1 (prod)"); got != "web_1__prod_" {
			t.Fatalf("run %d: got %q", i, got)
		}
	}
}

func TestUniquerClaim(t *testing.T) {
	u := NewUniquer()

	if got, want := u.Claim("web-1", "111"), "web_1"; got != want {
		t.Fatalf("first claim = %q; want %q", got, want)
	}
	// "web.1" collides with "web-1" after sanitization and must pick up the
	// provider id suffix.
	if got, want := u.Claim("web.1", "222"), "web_1_222"; got != want {
		t.Fatalf("colliding claim = %q; want %q", got, want)
	}
	// A third, non-colliding name is untouched.
	if got, want := u.Claim("db-1", "333"), "db_1"; got != want {
		t.Fatalf("non-colliding claim = %q; want %q", got, want)
	}
}
