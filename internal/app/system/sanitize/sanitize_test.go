package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Sales Team", "Sales Team"},
		{"trims", "  Sales Team \n", "Sales Team"},
		{"strips tags", "<b>Sales</b> Team", "Sales Team"},
		{"strips script", `<script>alert("x")</script>Quarterly`, "Quarterly"},
		{"empty", "", ""},
		{"only markup", "<img src=x onerror=alert(1)>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
