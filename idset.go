package broadphase

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// bitmapPool recycles the dedup sets of the query hot path.
var bitmapPool = sync.Pool{
	New: func() any {
		return roaring.New()
	},
}

func getBitmap() *roaring.Bitmap {
	b := bitmapPool.Get().(*roaring.Bitmap)
	b.Clear()
	return b
}

func putBitmap(b *roaring.Bitmap) {
	if b == nil {
		return
	}
	b.Clear()
	bitmapPool.Put(b)
}

// toInts returns the ascending members of b, or nil when b is empty.
func toInts(b *roaring.Bitmap) []int {
	if b.IsEmpty() {
		return nil
	}
	out := make([]int, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}
