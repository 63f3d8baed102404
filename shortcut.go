package main

// ShortcutPath greedily simplifies a found path. For each node it tries to
// jump directly to the farthest later node reachable by a valid local path
// that is strictly shorter than the segment it replaces, splicing the new
// edge into the roadmap. Passes repeat until one completes without change,
// so the total length never increases and every consecutive pair in the
// output remains a currently-valid roadmap edge.
func ShortcutPath(rm *Roadmap, path []int) []int {
	out := append([]int(nil), path...)
	if len(out) < 3 {
		return out
	}

	// Pairs that already failed a collision check this run; retrying them
	// cannot succeed and would burn duplicate checks.
	failed := make(map[[2]int]bool)

	const improvement = 1e-9
	for changed := true; changed; {
		changed = false
		for i := 0; i+2 < len(out); i++ {
			for j := len(out) - 1; j > i+1; j-- {
				key := [2]int{out[i], out[j]}
				if failed[key] {
					continue
				}
				segment, err := rm.PathLength(out[i : j+1])
				if err != nil {
					continue
				}
				weight, ok := rm.TryConnect(out[i], out[j])
				if !ok {
					failed[key] = true
					continue
				}
				if weight < segment-improvement {
					out = append(out[:i+1], out[j:]...)
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
	}
	return out
}
