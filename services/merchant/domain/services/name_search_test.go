package services

import (
	"testing"

	"github.com/ghuser/storefront/services/merchant/domain/models"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"ring", "%ring%"},
		{"", "%%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := LikePattern(tt.query); got != tt.want {
				t.Fatalf("LikePattern(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestNameContains(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"Schroeder-Jerde", "jerde", true},
		{"Schroeder-Jerde", "SCHRO", true},
		{"Schroeder-Jerde", "", true},
		{"Schroeder-Jerde", "klein", false},
		{"100% Cotton", "0% c", true},
		{"ab", "a_", false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.query, func(t *testing.T) {
			if got := NameContains(models.MerchantName(tt.name), tt.query); got != tt.want {
				t.Fatalf("NameContains(%q, %q) = %v, want %v", tt.name, tt.query, got, tt.want)
			}
		})
	}
}

func TestSortByName(t *testing.T) {
	ms := []*models.Merchant{
		{ID: 3, Name: "Willms"},
		{ID: 2, Name: "Bernhard"},
		{ID: 1, Name: "Willms"},
	}
	SortByName(ms)

	want := []int64{2, 1, 3}
	for i, id := range want {
		if ms[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, ms[i].ID)
		}
	}
}

func TestSortByName_ByteOrder(t *testing.T) {
	ms := []*models.Merchant{
		{ID: 1, Name: "beta"},
		{ID: 2, Name: "Zeta"},
		{ID: 3, Name: "Alpha"},
	}
	SortByName(ms)

	want := []models.MerchantName{"Alpha", "Zeta", "beta"}
	for i, name := range want {
		if ms[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, ms[i].Name)
		}
	}
}
