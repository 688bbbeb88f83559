package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"valid national number", "(212) 555-0171", "+12125550171"},
		{"already e164", "+12125550171", "+12125550171"},
		{"invalid number kept verbatim", "555-0101", "555-0101"},
		{"free text kept verbatim", "call after 5pm", "call after 5pm"},
		{"trims input", "  +12125550171  ", "+12125550171"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
