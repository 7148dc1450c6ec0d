package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TileSize is the fallback tile edge in pixels when a map does not declare one.
	TileSize = 32

	// FrameDT is the fixed simulation step; ebiten calls Update at 60 TPS.
	FrameDT = 1.0 / 60.0
)
