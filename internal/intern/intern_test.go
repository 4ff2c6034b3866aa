package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternSameKeyReturnsSameID(t *testing.T) {
	b := NewBuilder(0)
	id1 := b.Intern("tokyo")
	id2 := b.Intern("tokyo")
	require.Equal(t, id1, id2)
}

func TestInternDistinctKeysGetDistinctIDs(t *testing.T) {
	b := NewBuilder(0)
	a := b.Intern("tokyo")
	c := b.Intern("osaka")
	require.NotEqual(t, a, c)
}

func TestInternIDsAreDenseFromZero(t *testing.T) {
	b := NewBuilder(0)
	names := []string{"a", "b", "c", "a", "d", "b"}
	seen := map[uint32]bool{}
	for _, n := range names {
		seen[b.Intern(n)] = true
	}
	require.Equal(t, 4, len(seen))
	for i := uint32(0); i < 4; i++ {
		require.Contains(t, seen, i)
	}
}

func TestFreezeResolvesAllInternedStrings(t *testing.T) {
	b := NewBuilder(0)
	ids := map[string]uint32{}
	for _, n := range []string{"tokyo", "osaka", "kyoto", "osaka"} {
		ids[n] = b.Intern(n)
	}
	reg := b.Freeze()
	require.Equal(t, 3, reg.Len())
	for n, id := range ids {
		require.Equal(t, n, reg.Resolve(id))
	}
}

func TestConcurrentInternIsExactlyOncePerKey(t *testing.T) {
	b := NewBuilder(0)
	const workers = 64
	const keys = 50

	var wg sync.WaitGroup
	results := make([][keys]uint32, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for k := 0; k < keys; k++ {
				results[w][k] = b.Intern(keyFor(k))
			}
		}(w)
	}
	wg.Wait()

	reg := b.Freeze()
	require.Equal(t, keys, reg.Len())

	for k := 0; k < keys; k++ {
		var first uint32
		for w := 0; w < workers; w++ {
			if w == 0 {
				first = results[w][k]
			} else {
				require.Equal(t, first, results[w][k], "key %d got divergent ids across goroutines", k)
			}
		}
		require.Equal(t, keyFor(k), reg.Resolve(first))
	}
}

func keyFor(k int) string {
	return string(rune('a'+k%26)) + string(rune('A'+(k/26)%26))
}
