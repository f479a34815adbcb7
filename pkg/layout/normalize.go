package layout

import "slices"

// Report describes what a normalization pass changed.
type Report struct {
	PrunedColumns  int `json:"pruned_columns"`
	PrunedRows     int `json:"pruned_rows"`
	RebalancedRows int `json:"rebalanced_rows"`
}

// Changed reports whether the pass modified the tree.
func (r Report) Changed() bool {
	return r.PrunedColumns+r.PrunedRows+r.RebalancedRows > 0
}

// Normalize repairs t in place: prunes empty columns and rows, then
// rebalances rows whose widths do not sum to [GridWidth].
func Normalize(t *Tree) Report {
	cols, rows := Prune(t)
	return Report{
		PrunedColumns:  cols,
		PrunedRows:     rows,
		RebalancedRows: Rebalance(t),
	}
}

// Prune removes every column without tiles and then every row without
// columns. It returns the number of removed columns and rows.
func Prune(t *Tree) (columns, rows int) {
	for _, r := range t.Rows {
		before := len(r.Columns)
		r.Columns = slices.DeleteFunc(r.Columns, func(c *Column) bool { return len(c.Tiles) == 0 })
		columns += before - len(r.Columns)
	}

	before := len(t.Rows)
	t.Rows = slices.DeleteFunc(t.Rows, func(r *Row) bool { return len(r.Columns) == 0 })
	rows = before - len(t.Rows)
	return columns, rows
}

// Rebalance reassigns column widths from [Widths] for every row whose
// widths do not sum to [GridWidth]. It returns the number of rows changed.
func Rebalance(t *Tree) int {
	changed := 0
	for _, r := range t.Rows {
		if len(r.Columns) == 0 || RowWidth(r) == GridWidth {
			continue
		}
		for i, w := range Widths(len(r.Columns)) {
			r.Columns[i].Width = w
		}
		changed++
	}
	return changed
}

// RowWidth sums the widths of the columns of r.
func RowWidth(r *Row) int {
	sum := 0
	for _, c := range r.Columns {
		sum += c.Width
	}
	return sum
}

var widthTable = map[int][]int{
	1: {16},
	2: {8, 8},
	3: {5, 6, 5},
	4: {4, 4, 4, 4},
}

// Widths returns the column widths for a row of n columns.
//
// Rows of up to [MaxColumns] columns use the fixed table. Wider rows only
// arise from hand-built trees (imports and drops never produce them) and
// get an equal share each, with the remainder spread over the leading
// columns so the sum is still [GridWidth]. Rows wider than [GridWidth]
// columns cannot satisfy the minimum width of 1 and get width 1 each.
func Widths(n int) []int {
	if n <= 0 {
		return nil
	}
	if w, ok := widthTable[n]; ok {
		return slices.Clone(w)
	}
	out := make([]int, n)
	if n > GridWidth {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	share, rest := GridWidth/n, GridWidth%n
	for i := range out {
		out[i] = share
		if i < rest {
			out[i]++
		}
	}
	return out
}
