package skillmatch

// Ratcliff/Obershelp string similarity.
//
// Ratio = 2*M / (len(a)+len(b)) where M is the total length of matched
// blocks: the longest common substring, then recursively the longest
// common substrings of the pieces to its left and right. Equivalent to
// Python difflib's SequenceMatcher.ratio() for short strings.

// Ratio returns the similarity of two strings in [0,1].
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchedTotal(ra, rb)) / float64(total)
}

// matchedTotal sums matching-block lengths over the recursive split.
func matchedTotal(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedTotal(a[:ai], b[:bi]) +
		matchedTotal(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common substring of a and b.
// Ties resolve to the block starting earliest in a, then earliest in b,
// which keeps results deterministic across runs.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > size {
				size = cur[j+1]
				ai = i - size + 1
				bi = j - size + 1
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}
