package tensor

import "math/bits"

// Popcount returns the number of set bits in a dimension mask.
func Popcount(mask uint) int {
	return bits.OnesCount(mask)
}

// LowestSetBit returns the index of the lowest set bit, or -1 for an empty mask.
func LowestSetBit(mask uint) int {
	if mask == 0 {
		return -1
	}
	return bits.TrailingZeros(mask)
}

// SelectedDims expands a dimension mask into the ascending list of
// selected dimension indices.
func SelectedDims(mask uint) []int {
	dims := make([]int, 0, Popcount(mask))
	for mask != 0 {
		lsb := LowestSetBit(mask)
		mask &^= 1 << uint(lsb)
		dims = append(dims, lsb)
	}
	return dims
}
