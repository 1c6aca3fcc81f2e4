package utils

import "math"

// CreateRankList returns 1-based positional ranks for an already sorted
// list of count items. Ranks past the uint16 range saturate.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(min(i+1, math.MaxUint16))
	}
	return ranks
}
