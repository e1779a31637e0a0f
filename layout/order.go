package layout

import (
	"math"
	"sort"

	"github.com/momomsr/PDFOCR/model"
)

// LineOrderer puts a page's detected lines into reading order before
// classification: columns left to right, lines top to bottom within a
// column. The classifier and block builder rely on this ordering.
type LineOrderer interface {
	// Order returns the lines in reading order. The input is not modified.
	Order(lines []model.Line) []model.Line
}

// NewLineOrderer selects an ordering strategy. With column detection
// enabled it returns a ColumnOrderer for up to maxColumns columns,
// otherwise a PositionalOrderer.
func NewLineOrderer(detectColumns bool, maxColumns int) LineOrderer {
	if detectColumns && maxColumns > 1 {
		return &ColumnOrderer{MaxColumns: maxColumns}
	}
	return &PositionalOrderer{}
}

// PositionalOrderer orders lines by their top edge alone. It is the
// fallback strategy for single-column pages and for pages where column
// clustering degenerates.
type PositionalOrderer struct{}

// Order returns the lines sorted top to bottom (stable)
func (o *PositionalOrderer) Order(lines []model.Line) []model.Line {
	out := make([]model.Line, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Box.Top() < out[j].Box.Top()
	})
	return out
}

// ColumnOrderer groups lines into columns by clustering their horizontal
// centers, then orders columns left to right and lines top to bottom
// within each column. When clustering degenerates (fewer distinct centers
// than requested columns, or no stable assignment), it falls back to
// positional ordering.
type ColumnOrderer struct {
	// MaxColumns is the maximum number of columns to detect
	MaxColumns int
}

// maxClusterIterations bounds the Lloyd iteration count for k-means.
const maxClusterIterations = 50

// Order returns the lines in column-aware reading order
func (o *ColumnOrderer) Order(lines []model.Line) []model.Line {
	if len(lines) < 2 {
		return (&PositionalOrderer{}).Order(lines)
	}

	centers := make([]float64, len(lines))
	for i, line := range lines {
		centers[i] = line.Box.CenterX()
	}

	k := o.MaxColumns
	if k > len(lines) {
		k = len(lines)
	}
	if distinct := countDistinct(centers); k > distinct {
		k = distinct
	}
	if k < 2 {
		return (&PositionalOrderer{}).Order(lines)
	}

	labels, centroids, ok := clusterCenters(centers, k)
	if !ok {
		return (&PositionalOrderer{}).Order(lines)
	}

	// Rank columns left to right by centroid.
	rank := make([]int, len(centroids))
	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return centroids[order[i]] < centroids[order[j]]
	})
	for pos, cluster := range order {
		rank[cluster] = pos
	}

	out := make([]model.Line, len(lines))
	copy(out, lines)
	idx := make([]int, len(lines))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := rank[labels[idx[a]]], rank[labels[idx[b]]]
		if ra != rb {
			return ra < rb
		}
		return lines[idx[a]].Box.Top() < lines[idx[b]].Box.Top()
	})
	for pos, i := range idx {
		out[pos] = lines[i]
	}
	return out
}

// clusterCenters runs 1-D k-means over the horizontal centers. It returns
// per-value cluster labels and the final centroids, or ok=false when the
// clustering degenerates (an empty cluster that cannot be repaired).
func clusterCenters(values []float64, k int) (labels []int, centroids []float64, ok bool) {
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	// Seed centroids evenly across the observed range.
	centroids = make([]float64, k)
	for i := range centroids {
		centroids[i] = minV + (maxV-minV)*float64(2*i+1)/float64(2*k)
	}

	labels = make([]int, len(values))
	for iter := 0; iter < maxClusterIterations; iter++ {
		changed := false
		for i, v := range values {
			best := 0
			bestDist := math.Abs(v - centroids[0])
			for c := 1; c < k; c++ {
				if d := math.Abs(v - centroids[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[labels[i]] += v
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				return nil, nil, false
			}
			centroids[c] = sums[c] / float64(counts[c])
		}

		if !changed && iter > 0 {
			break
		}
	}

	return labels, centroids, true
}

// countDistinct returns the number of distinct values
func countDistinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
