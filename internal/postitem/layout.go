package postitem

// Layout is the image grid arrangement, chosen by image count.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutSingle
	LayoutPair
	LayoutTriple
	LayoutGrid
)

func LayoutFor(count int) Layout {
	switch {
	case count <= 0:
		return LayoutNone
	case count == 1:
		return LayoutSingle
	case count == 2:
		return LayoutPair
	case count == 3:
		return LayoutTriple
	default:
		return LayoutGrid
	}
}

func (l Layout) Columns() int {
	switch l {
	case LayoutNone:
		return 0
	case LayoutSingle:
		return 1
	default:
		return 2
	}
}

// Span is how many columns image index occupies. Only the first of exactly
// three images spans the full row.
func (l Layout) Span(index int) int {
	if l == LayoutTriple && index == 0 {
		return 2
	}
	return 1
}

// Rows groups image indexes into grid rows.
func (l Layout) Rows(count int) [][]int {
	columns := l.Columns()
	if columns == 0 {
		return nil
	}

	var (
		rows [][]int
		row  []int
		used int
	)

	for i := 0; i < count; i++ {
		row = append(row, i)
		used += l.Span(i)
		if used >= columns {
			rows = append(rows, row)
			row = nil
			used = 0
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return rows
}
