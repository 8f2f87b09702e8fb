package catalog

import "slices"

// index is a secondary lookup from a key to a set of module ids. Buckets
// are created lazily and dropped once empty.
type index struct {
	buckets map[string]map[string]struct{}
}

func newIndex() *index {
	return &index{buckets: make(map[string]map[string]struct{})}
}

func (x *index) add(key, id string) {
	bucket, ok := x.buckets[key]
	if !ok {
		bucket = make(map[string]struct{})
		x.buckets[key] = bucket
	}
	bucket[id] = struct{}{}
}

func (x *index) remove(key, id string) {
	bucket, ok := x.buckets[key]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(x.buckets, key)
	}
}

// ids returns the bucket's ids sorted.
func (x *index) ids(key string) []string {
	bucket := x.buckets[key]
	out := make([]string, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (x *index) keys() []string {
	out := make([]string, 0, len(x.buckets))
	for k := range x.buckets {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
