package engine

// Collapse slides the tiles of one line toward index 0 and merges equal
// neighbours once. The returned slice has the same length as line.
//
// Tiles that are not merged are returned as-is (same pointer); a merge
// allocates a new tile whose MergedFrom records both sources. A merged tile
// never merges again in the same call, so [2 2 2 2] becomes [4 4 _ _].
// The second result is the sum of the merged values.
func Collapse(line []*Tile) ([]*Tile, int) {
	out := make([]*Tile, len(line))
	score := 0
	n := 0

	for i := 0; i < len(line); i++ {
		first := line[i]
		if first == nil {
			continue
		}

		// Find the next occupied slot.
		j := i + 1
		for j < len(line) && line[j] == nil {
			j++
		}

		if j < len(line) && line[j].Value == first.Value {
			merged := NewTile(first.Position, first.Value*2)
			merged.MergedFrom = []*Tile{first, line[j]}
			out[n] = merged
			score += merged.Value
			i = j
		} else {
			out[n] = first
		}
		n++
	}

	return out, score
}
