package mandel

// Buffer holds one iteration count per pixel in row-major order.
type Buffer struct {
	Width, Height int
	Counts        []int
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Counts: make([]int, width*height),
	}
}

// Row returns the counts of row y. The capacity is capped at the row end,
// so appending to or reslicing the result cannot reach a neighbouring row.
func (b *Buffer) Row(y int) []int {
	start := y * b.Width
	end := start + b.Width
	return b.Counts[start:end:end]
}

func (b *Buffer) Index(x, y int) int {
	return y*b.Width + x
}

// Coords converts a linear index back to (column, row).
func (b *Buffer) Coords(i int) (x, y int) {
	return i % b.Width, i / b.Width
}

func (b *Buffer) At(x, y int) int {
	return b.Counts[b.Index(x, y)]
}
