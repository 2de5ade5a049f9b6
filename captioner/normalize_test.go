package captioner

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Golden_Retriever", "golden_retriever"},
		{"  dog \n", "dog"},
		{"ＤＯＧ", "dog"}, // fullwidth folds via NFKC
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLabel(tt.in); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHumanizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"golden_retriever", "golden retriever"},
		{"sports_car", "sports car"},
		{"__double__underscores__", "double underscores"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := HumanizeLabel(tt.in); got != tt.want {
			t.Errorf("HumanizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
