package parse

import "testing"

func TestParseHeightInches(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"apostrophe form", `6'9"`, 81, true},
		{"apostrophe with fraction", `6'10.5"`, 82.5, true},
		{"hyphen form", "6-9", 81, true},
		{"hyphen tall", "7-1", 85, true},
		{"empty", "", 0, false},
		{"garbage", "tall", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHeightInches(tt.input)
			if !tt.ok {
				if got != nil {
					t.Fatalf("ParseHeightInches(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseHeightInches(%q) = nil, want %v", tt.input, tt.want)
			}
			if *got != tt.want {
				t.Fatalf("ParseHeightInches(%q) = %v, want %v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestFormatHeight(t *testing.T) {
	if got := FormatHeight("6-5"); got != `6'5"` {
		t.Fatalf("FormatHeight(6-5) = %q, want 6'5\"", got)
	}
	if got := FormatHeight(""); got != "" {
		t.Fatalf("FormatHeight(empty) = %q, want empty", got)
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"205 lbs", 205, true},
		{"198", 198, true},
		{"", 0, false},
		{"heavy", 0, false},
	}

	for _, tt := range tests {
		got := ParseWeight(tt.input)
		if !tt.ok {
			if got != nil {
				t.Errorf("ParseWeight(%q) = %v, want nil", tt.input, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParseWeight(%q) = %v, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseAge(t *testing.T) {
	got := ParseAge("18.3 yrs")
	if got == nil || *got != 18.3 {
		t.Fatalf("ParseAge(18.3 yrs) = %v, want 18.3", got)
	}
	if ParseAge("") != nil {
		t.Fatal("ParseAge(empty) should be nil")
	}
}

func TestNormalizeClassLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fr.", "Freshman"},
		{"So.", "Sophomore"},
		{"Jr.", "Junior"},
		{"Sr.", "Senior"},
		{"Intl.", "International"},
		{"Int.", "International"},
		{"Freshman", "Freshman"},
		{"", "Unknown"},
		{"Redshirt", "Redshirt"},
	}

	for _, tt := range tests {
		if got := normalizeClassLabel(tt.input); got != tt.want {
			t.Errorf("normalizeClassLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
