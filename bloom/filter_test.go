package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/frontier/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Add_and_Test(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("abc123"), "unrecorded hash should not be present")

	f.Add("abc123")

	assert.True(t, f.Test("abc123"), "recorded hash should be present")
}

func TestFilter_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := 0; i < 1000; i++ {
		f.Add(fmt.Sprintf("hash-%d", i))
	}
	for i := 0; i < 1000; i++ {
		assert.True(t, f.Test(fmt.Sprintf("hash-%d", i)))
	}
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := 0; i < 500; i++ {
		f.Add(fmt.Sprintf("hash-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 500, float64(count), 50, "estimate should be near the true count")
}
