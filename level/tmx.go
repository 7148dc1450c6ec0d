package level

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Object group and layer names read from TMX files.
const (
	SolidLayer       = "solid"
	HazardGroup      = "Hazards"
	CheckpointGroup  = "Checkpoints"
	PlayerSpawnGroup = "PlayerSpawn"
)

// Rect is an axis-aligned box in world pixels, top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the middle of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Object is a named rectangle from an object group.
type Object struct {
	Name string
	Rect
}

// Map is the parsed content of a level file.
type Map struct {
	Path       string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	// Solid holds one entry per tile, row-major.
	Solid       []bool
	Hazards     []Object
	Checkpoints []Object
	SpawnX      float64
	SpawnY      float64
	HasSpawn    bool
}

// PixelSize returns the map's extent in world pixels.
func (m *Map) PixelSize() (float64, float64) {
	if m == nil {
		return 0, 0
	}
	return float64(m.Width * m.TileWidth), float64(m.Height * m.TileHeight)
}

// Load parses a TMX file from fsys.
func Load(fsys fs.FS, path string) (*Map, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}

	m := &Map{
		Path:       path,
		Width:      levelMap.Width,
		Height:     levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
		Solid:      make([]bool, levelMap.Width*levelMap.Height),
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		for i, tile := range layer.Tiles {
			if i >= len(m.Solid) {
				break
			}
			m.Solid[i] = tile != nil && !tile.IsNil()
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case HazardGroup:
			for _, o := range og.Objects {
				m.Hazards = append(m.Hazards, Object{
					Name: o.Name,
					Rect: Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height},
				})
			}
		case CheckpointGroup:
			for _, o := range og.Objects {
				m.Checkpoints = append(m.Checkpoints, Object{
					Name: o.Name,
					Rect: Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height},
				})
			}
		case PlayerSpawnGroup:
			if len(og.Objects) > 0 && !m.HasSpawn {
				m.SpawnX = og.Objects[0].X
				m.SpawnY = og.Objects[0].Y
				m.HasSpawn = true
			}
		}
	}

	return m, nil
}
