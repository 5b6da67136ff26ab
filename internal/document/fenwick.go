package document

// fenwick is a binary indexed tree of per-line visibility counts.
// Structural edits rebuild it; visibility toggles update it in place.
type fenwick struct {
	tree []int
}

// build resets the tree from a visibility slice in O(n).
func (f *fenwick) build(hidden []bool) {
	n := len(hidden)
	if cap(f.tree) >= n+1 {
		f.tree = f.tree[:n+1]
		clear(f.tree)
	} else {
		f.tree = make([]int, n+1)
	}
	for i := 1; i <= n; i++ {
		if !hidden[i-1] {
			f.tree[i]++
		}
		if j := i + (i & -i); j <= n {
			f.tree[j] += f.tree[i]
		}
	}
}

// add adds delta at index i (0-based).
func (f *fenwick) add(i, delta int) {
	for i++; i < len(f.tree); i += i & -i {
		f.tree[i] += delta
	}
}

// prefix returns the sum over [0, i).
func (f *fenwick) prefix(i int) int {
	if i >= len(f.tree) {
		i = len(f.tree) - 1
	}
	sum := 0
	for ; i > 0; i -= i & -i {
		sum += f.tree[i]
	}
	return sum
}

// total returns the sum over all indexes.
func (f *fenwick) total() int {
	return f.prefix(len(f.tree) - 1)
}

// find returns the smallest 0-based index whose inclusive prefix sum
// reaches k (k is 1-based). The caller guarantees 1 <= k <= total().
func (f *fenwick) find(k int) int {
	n := len(f.tree) - 1
	pos := 0
	step := 1
	for step*2 <= n {
		step *= 2
	}
	for ; step > 0; step /= 2 {
		if next := pos + step; next <= n && f.tree[next] < k {
			pos = next
			k -= f.tree[next]
		}
	}
	return pos
}
