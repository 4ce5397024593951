// Package bloom provides content-hash deduplication using Bloom filters.
//
// The frontier uses a Bloom filter rather than an exact set for content
// hashes because the set only ever grows: the filter keeps memory fixed for
// the life of a crawl. A false positive suppresses a page that was not
// actually a duplicate, which is an acceptable trade; false negatives cannot
// occur, so true duplicates are always caught.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by content hash.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected hashes with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a content hash.
func (f *Filter) Add(hash string) {
	f.f.AddString(hash)
}

// Test returns true if the hash might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(hash string) bool {
	return f.f.TestString(hash)
}

// EstimatedCount returns the approximate number of recorded hashes.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
