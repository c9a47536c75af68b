package ops

import "testing"

func TestLikePatterns(t *testing.T) {
	cases := []struct {
		text    string
		pattern string
		want    bool
	}{
		{"widget", "widget", true},
		{"widget", "wid*", true},
		{"widget", "*get", true},
		{"widget", "w*t", true},
		{"widget", "w?dget", true},
		{"widget", "w?get", false},
		{"widget", "*", true},
		{"", "*", true},
		{"", "?", false},
		{"widget", "gadget", false},
		{"WIDGET", "wid*", true},
		{"wid*get", "wid*get", true},
		{"abc", "a*b*c", true},
		{"aXbYc", "a*b*c", true},
	}

	for _, c := range cases {
		got := Like(c.text, c.pattern)
		if got != c.want {
			t.Errorf("Like(%q, %q) Expected %v but got %v", c.text, c.pattern, c.want, got)
		}
	}
}

func TestLikeIsNotContains(t *testing.T) {
	// a bare pattern matches the whole string, not a substring
	if Like("widgets", "widget") {
		t.Errorf("Expected bare pattern to require a full match")
	}
}
