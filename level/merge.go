package level

// TileRect is a block of tiles, in tile units.
type TileRect struct {
	X, Y, W, H int
}

// MergeSolids greedily covers the solid cells of a row-major grid with as
// few rectangles as it can: each rectangle grows right along its first row,
// then down while every cell of the next row is free.
func MergeSolids(grid []bool, width, height int) []TileRect {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	solid := func(idx int) bool {
		return idx < len(grid) && grid[idx] && !visited[idx]
	}

	var out []TileRect
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !solid(index(x, y)) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && solid(index(x2, y)); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !solid(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}
			out = append(out, TileRect{X: x, Y: y, W: maxW, H: maxH})
		}
	}
	return out
}
