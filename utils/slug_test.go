package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Spring Promo", "spring-promo"},
		{"  Spring   Promo!! ", "spring-promo"},
		{"CO2 & Foam -- Extinguishers", "co2-foam-extinguishers"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcode Déjà", "n-code-d-j"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"spring-promo", true},
		{"a1", true},
		{"Spring-Promo", false},
		{"-lead", false},
		{"trail-", false},
		{"double--hyphen", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSlug(tt.in); got != tt.want {
			t.Errorf("IsSlug(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
