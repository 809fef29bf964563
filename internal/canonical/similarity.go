package canonical

// Similarity scores how alike two normalized strings are, in [0,1].
// The mapper only depends on this interface, so the metric can be swapped
// without touching the threshold logic.
type Similarity interface {
	Score(a, b string) float64
}

// DiceBigram is a Sørensen–Dice coefficient over character bigram multisets.
type DiceBigram struct{}

func (DiceBigram) Score(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	counts := make(map[string]int, len(a)-1)
	for i := 0; i+2 <= len(a); i++ {
		counts[a[i:i+2]]++
	}
	overlap := 0
	for i := 0; i+2 <= len(b); i++ {
		if bg := b[i : i+2]; counts[bg] > 0 {
			counts[bg]--
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(a)+len(b)-2)
}
