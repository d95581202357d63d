package corpus

// Permuter produces random permutations. *math/rand/v2.Rand satisfies it.
type Permuter interface {
	Perm(n int) []int
}

// Sample returns n poems drawn uniformly without replacement.
//
// Corpora with at most n poems, or a non-positive n, are returned unchanged.
// The input slice is never modified.
func Sample(poems []Poem, n int, rng Permuter) []Poem {
	if n <= 0 || len(poems) <= n || rng == nil {
		return poems
	}
	picks := rng.Perm(len(poems))[:n]
	sampled := make([]Poem, 0, n)
	for _, index := range picks {
		sampled = append(sampled, poems[index])
	}
	return sampled
}
