package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"The Movie of the Week!", "the-movie-of-the-week"},
		{"  Leading & Trailing  ", "leading-trailing"},
		{"Already-slugged-title", "already-slugged-title"},
		{"UPPER case 123", "upper-case-123"},
		{"multiple   spaces --- and dashes", "multiple-spaces-and-dashes"},
		{"!!!", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title: %q", tc.title)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "a1-b2-c3", "2024-in-review"}
	for _, s := range valid {
		assert.True(t, IsValidSlug(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "-leading", "trailing-", "double--dash", "Upper-Case", "with space", "unders_core"}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), "expected %q to be invalid", s)
	}
}
