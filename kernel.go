package mandel

// Escape returns the number of iterations of z ← z² + c, starting at z = 0,
// after which |z|² exceeds 4. Points that stay bounded return maxIterations.
func Escape(c complex128, maxIterations int) int {
	var zr, zi float64
	cr, ci := real(c), imag(c)

	i := 0
	for ; i < maxIterations; i++ {
		zr2, zi2 := zr*zr, zi*zi
		if zr2+zi2 > 4 {
			break
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
	}
	return i
}

// renderRow fills one image row. Serial and parallel engines share it so both
// produce bit-identical counts.
func renderRow(v View, y int, row []int, maxIterations int) {
	for x := range row {
		row[x] = Escape(v.Point(x, y), maxIterations)
	}
}
