package ops

// Like matches text against a wildcard pattern where '*' matches any
// run of characters (including none) and '?' matches exactly one.
// Matching is case-insensitive on both sides, so a pattern without
// wildcards behaves like a whole-string equality test rather than the
// substring test Contains performs.
func Like(text, pattern string) bool {
	t := []rune(Text(text))
	p := []rune(Text(pattern))

	ti, pi := 0, 0
	starIdx := -1
	backtrack := 0

	for ti < len(t) {
		if pi < len(p) && (p[pi] == '?' || p[pi] == t[ti]) {
			ti++
			pi++
		} else if pi < len(p) && p[pi] == '*' {
			starIdx = pi
			backtrack = ti
			pi++
		} else if starIdx >= 0 {
			// retry the last '*' against one more character
			pi = starIdx + 1
			backtrack++
			ti = backtrack
		} else {
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}

	return pi == len(p)
}
