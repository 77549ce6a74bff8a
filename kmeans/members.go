package kmeans

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/kmeanslab/model"
)

// Members returns one bitmap of point indices per cluster slot.
// Slots with no members yield an empty (non-nil) bitmap.
func Members(assignment model.Assignment, k int) []*roaring.Bitmap {
	members := make([]*roaring.Bitmap, k)
	for j := range members {
		members[j] = roaring.New()
	}
	for i, cluster := range assignment {
		members[cluster].Add(uint32(i))
	}
	return members
}

// Sizes returns the number of points assigned to each cluster slot.
func Sizes(assignment model.Assignment, k int) []int {
	sizes := make([]int, k)
	for _, cluster := range assignment {
		sizes[cluster]++
	}
	return sizes
}
