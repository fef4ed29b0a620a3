// Package parallel provides the tile split and worker pool the software
// renderer uses to shade pixels concurrently.
//
// Tiles are independent: each pixel is written by exactly one tile, so
// tiles need no synchronization beyond waiting for the pool.
package parallel

// TileSize is the edge length of a full tile in pixels.
const TileSize = 32

// Tile is a rectangle of pixels [X0, X1) x [Y0, Y1).
type Tile struct {
	X0, Y0, X1, Y1 int
}

// Width returns the tile width in pixels.
func (t Tile) Width() int { return t.X1 - t.X0 }

// Height returns the tile height in pixels.
func (t Tile) Height() int { return t.Y1 - t.Y0 }

// Pixels returns the number of pixels in the tile.
func (t Tile) Pixels() int { return t.Width() * t.Height() }

// SplitTiles covers a width x height canvas with tiles of at most
// TileSize x TileSize, in row-major order. Edge tiles are smaller when the
// canvas is not a multiple of TileSize.
func SplitTiles(width, height int) []Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	cols := (width + TileSize - 1) / TileSize
	rows := (height + TileSize - 1) / TileSize

	tiles := make([]Tile, 0, cols*rows)
	for ty := range rows {
		for tx := range cols {
			tiles = append(tiles, Tile{
				X0: tx * TileSize,
				Y0: ty * TileSize,
				X1: min((tx+1)*TileSize, width),
				Y1: min((ty+1)*TileSize, height),
			})
		}
	}
	return tiles
}
