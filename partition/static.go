package partition

// Static returns the contiguous block of indices in 0..n-1 owned by rank
// in a group of size workers. The union of all ranks' blocks is exactly
// 0..n-1 with no overlaps; blocks differ in length by at most one.
func Static(n, size, rank int) []int {
	if n <= 0 || size <= 0 || rank < 0 || rank >= size {
		return nil
	}

	base := n / size
	rem := n % size

	start := rank*base + min(rank, rem)
	length := base
	if rank < rem {
		length++
	}

	indices := make([]int, length)
	for i := range indices {
		indices[i] = start + i
	}
	return indices
}
