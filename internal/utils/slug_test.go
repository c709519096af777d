package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Go Meetup 2026", "go-meetup-2026"},
		{"  Jazz  &  Blues Night  ", "jazz-blues-night"},
		{"UPPER-case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"___", ""},
		{"", ""},
		{"Café Crawl", "caf-crawl"},
		{"100% Live!", "100-live"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
