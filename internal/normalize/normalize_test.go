package normalize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Astralis  ", "Astralis"},
		{"Match\n\t over", "Match over"},
		{"Natus\u00A0\u00A0Vincere\u00A0", "Natus Vincere"},
		{"", ""},
	}

	for _, tt := range tests {
		result := Text(tt.input)
		if result != tt.expected {
			t.Errorf("Text(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"71.4%", "71.4"},
		{" #12 ", "12"},
		{"1.25", "1.25"},
		{"-", "-"},
	}

	for _, tt := range tests {
		result := Number(tt.input)
		if result != tt.expected {
			t.Errorf("Number(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.hltv.org/matches/2346065/x#stats", "https://www.hltv.org/matches/2346065/x"},
		{"  /team/6665/astralis  ", "/team/6665/astralis"},
	}

	for _, tt := range tests {
		result := URL(tt.input)
		if result != tt.expected {
			t.Errorf("URL(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
