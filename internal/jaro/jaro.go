// Package jaro implements the Jaro and Jaro-Winkler string similarity
// metrics over any comparable element type, operating on already
// split sequences (e.g. []rune) so callers can reuse interned token
// ids directly instead of re-splitting strings on every comparison.
package jaro

// winklerThreshold gates the Winkler prefix boost. The textbook value
// is 0.7; this implementation computes in float32 while most
// published reference values are float64, so the threshold is
// lowered by one ULP-scale epsilon (0.69999) to avoid a Jaro score
// that rounds to exactly 0.7 in float64 falling just short of it in
// float32.
const winklerThreshold = 0.69999

// maxPrefixLen caps the Winkler common-prefix bonus at 4 characters.
const maxPrefixLen = 4

// prefixScalingFactor is the weight applied to the length of a shared
// prefix (one tenth of a point per character) in the Winkler boost.
const prefixScalingFactor = 0.1

// Similarity computes the Jaro similarity of a and b: 1.0 for two
// empty sequences, 0.0 if exactly one is empty, otherwise a value in
// [0,1].
func Similarity[T comparable](a, b []T) float32 {
	aLen := len(a)
	bLen := len(b)

	if aLen == 0 && bLen == 0 {
		return 1.0
	}
	if aLen == 0 || bLen == 0 {
		return 0.0
	}

	window := max(aLen, bLen)/2 - 1
	if window < 0 {
		window = 0
	}

	aFlags := make([]bool, aLen)
	bFlags := make([]bool, bLen)

	matches := 0
outer:
	for i := 0; i < aLen; i++ {
		jFrom := i - window
		if jFrom < 0 {
			jFrom = 0
		}
		jBound := i + window + 1
		if jBound > bLen {
			jBound = bLen
		}
		for j := jFrom; j < jBound; j++ {
			if a[i] == b[j] && !bFlags[j] {
				aFlags[i] = true
				bFlags[j] = true
				matches++
				if matches == bLen {
					break outer
				}
				break
			}
		}
	}

	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	if matches > 1 {
		j := 0
		for i := 0; i < aLen; i++ {
			if !aFlags[i] {
				continue
			}
			for !bFlags[j] {
				j++
			}
			if a[i] != b[j] {
				transpositions++
				if transpositions == matches {
					break
				}
			}
			j++
		}
	}

	m := float32(matches)
	return ((m / float32(aLen)) + (m / float32(bLen)) + ((m - float32(transpositions)/2) / m)) / 3.0
}

// Winkler computes the Jaro-Winkler similarity of a and b: the Jaro
// similarity, boosted for a shared prefix of up to 4 elements when
// the base similarity already exceeds winklerThreshold.
func Winkler[T comparable](a, b []T) float32 {
	sim := Similarity(a, b)
	if sim <= winklerThreshold {
		return sim
	}

	maxPrefix := min(len(a), len(b), maxPrefixLen)
	prefixLen := 0
	for prefixLen < maxPrefix && a[prefixLen] == b[prefixLen] {
		prefixLen++
	}

	return sim + prefixScalingFactor*float32(prefixLen)*(1-sim)
}
