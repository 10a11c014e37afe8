package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()

	var (
		wg      sync.WaitGroup
		counter = map[string]*int{"a": new(int), "b": new(int)}
	)
	for i := range 100 {
		key := []string{"a", "b"}[i%2]
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(key)
			*counter[key]++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, *counter["a"])
	assert.Equal(t, 50, *counter["b"])
	assert.Empty(t, k.locks)
}
