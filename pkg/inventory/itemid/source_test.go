package itemid

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStrictlyIncreasing(t *testing.T) {
	s := NewSource()

	var last int64
	for i := 0; i < 1000; i++ {
		id := s.Next()
		n, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err)
		assert.Greater(t, n, last, "id %s not greater than previous", id)
		last = n
	}
}

func TestNextDistinctUnderConcurrency(t *testing.T) {
	s := NewSource()

	const workers = 8
	const perWorker = 200

	results := make([][]string, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]string, perWorker)
			for i := range ids {
				ids[i] = s.Next()
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, ids := range results {
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, workers*perWorker)
}
