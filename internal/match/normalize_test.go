package match

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A.J. Dybantsa", "aj dybantsa"},
		{"Cooper  Flagg", "cooper flagg"},
		{"Tarris Reed Jr.", "tarris reed jr"},
		{"De'Aaron Fox", "deaaron fox"},
		{"  Nolan Traore  ", "nolan traore"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeNameLoose_DropsSuffixes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tarris Reed Jr.", "tarris reed"},
		{"Patrick Ngongba II", "patrick ngongba"},
		{"Mouhamed Faye III", "mouhamed faye"},
		{"Cooper Flagg", "cooper flagg"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeNameLoose(tc.in); got != tc.want {
			t.Fatalf("NormalizeNameLoose(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeNameLoose_KeepsSuffixInsideWords(t *testing.T) {
	// "v" only drops as a whole word; names containing it stay intact.
	if got := NormalizeNameLoose("Vit Krejci"); got != "vit krejci" {
		t.Fatalf("unexpected loose name: %q", got)
	}
}

func TestNormalizeSchool_Aliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"UConn", "connecticut"},
		{"LSU", "louisiana state"},
		{"Ole Miss", "mississippi"},
		{"St. John's", "st johns"},
		{"Duke", "duke"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeSchool(tc.in, nil); got != tc.want {
			t.Fatalf("NormalizeSchool(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSchool_CustomAliases(t *testing.T) {
	aliases := map[string]string{"cal": "california"}
	if got := NormalizeSchool("Cal", aliases); got != "california" {
		t.Fatalf("unexpected school: %q", got)
	}
	// Custom table replaces the default one entirely.
	if got := NormalizeSchool("LSU", aliases); got != "lsu" {
		t.Fatalf("unexpected school: %q", got)
	}
}
