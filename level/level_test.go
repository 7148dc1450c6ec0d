package level

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/milk9111/pawbs/assets"
	"github.com/milk9111/pawbs/physics"
)

const smallTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="32" tileheight="32" infinite="0">
 <tileset firstgid="1" name="terrain" tilewidth="32" tileheight="32" tilecount="1" columns="1">
  <image source="terrain.png" width="32" height="32"/>
 </tileset>
 <layer id="1" name="solid" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
0,0,0,0,
1,1,0,1
</data>
 </layer>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="40" y="50"/>
 </objectgroup>
 <objectgroup id="3" name="Hazards">
  <object id="2" name="pit" x="64" y="64" width="32" height="32"/>
 </objectgroup>
 <objectgroup id="4" name="Checkpoints">
  <object id="3" name="flag" x="0" y="0" width="16" height="32"/>
 </objectgroup>
</map>
`

func TestMergeSolids(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		grid string
		want []TileRect
	}{
		{"empty", 3, 2, "000000", nil},
		{"single_row", 4, 1, "1101", []TileRect{{0, 0, 2, 1}, {3, 0, 1, 1}}},
		{"block", 3, 2, "111111", []TileRect{{0, 0, 3, 2}}},
		{"l_shape", 3, 2, "100111", []TileRect{{0, 0, 1, 2}, {1, 1, 2, 1}}},
		{"short_grid", 2, 2, "11", []TileRect{{0, 0, 2, 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			grid := make([]bool, len(c.grid))
			for i, ch := range c.grid {
				grid[i] = ch == '1'
			}
			got := MergeSolids(grid, c.w, c.h)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{"levels/small.tmx": {Data: []byte(smallTMX)}}
	m, err := Load(fsys, "levels/small.tmx")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Width != 4 || m.Height != 3 || m.TileWidth != 32 {
		t.Fatalf("unexpected dimensions %dx%d@%d", m.Width, m.Height, m.TileWidth)
	}
	wantSolid := []bool{false, false, false, false, false, false, false, false, true, true, false, true}
	if !reflect.DeepEqual(m.Solid, wantSolid) {
		t.Fatalf("expected solids %v, got %v", wantSolid, m.Solid)
	}
	if !m.HasSpawn || m.SpawnX != 40 || m.SpawnY != 50 {
		t.Fatalf("unexpected spawn %v (%v, %v)", m.HasSpawn, m.SpawnX, m.SpawnY)
	}
	if len(m.Hazards) != 1 || m.Hazards[0].Name != "pit" || m.Hazards[0].W != 32 {
		t.Fatalf("unexpected hazards %+v", m.Hazards)
	}
	if len(m.Checkpoints) != 1 || m.Checkpoints[0].H != 32 {
		t.Fatalf("unexpected checkpoints %+v", m.Checkpoints)
	}

	if _, err := Load(fsys, "levels/missing.tmx"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadEmbeddedIntro(t *testing.T) {
	m, err := Load(assets.FS(), "levels/intro.tmx")
	if err != nil {
		t.Fatalf("load intro: %v", err)
	}
	if len(m.Hazards) == 0 || len(m.Checkpoints) == 0 || !m.HasSpawn {
		t.Fatalf("expected hazards, checkpoints and a spawn in intro")
	}
}

func newTestWorld() *physics.World {
	return physics.NewWorld(physics.Config{Gravity: 900}, log.New(&bytes.Buffer{}))
}

func TestBuildTagsSensors(t *testing.T) {
	var logs bytes.Buffer
	m := &Map{
		Path: "test.tmx", Width: 4, Height: 3, TileWidth: 32, TileHeight: 32,
		Solid: make([]bool, 12),
		Hazards: []Object{
			{Name: "a", Rect: Rect{X: 0, Y: 0, W: 10, H: 10}},
			{Name: "flat", Rect: Rect{X: 0, Y: 0, W: 10, H: 0}},
			{Name: "b", Rect: Rect{X: 20, Y: 0, W: 10, H: 10}},
		},
		Checkpoints: []Object{{Name: "c", Rect: Rect{X: 50, Y: 50, W: 16, H: 32}}},
	}
	world := newTestWorld()
	inst := Build(m, world, log.New(&logs))

	var hazardTags []string
	for _, hz := range inst.Hazards() {
		hazardTags = append(hazardTags, hz.Tag)
		if tag, ok := inst.Tags().Tag(hz.Handle); !ok || tag != hz.Tag {
			t.Fatalf("expected registry to name %d %s, got %s", hz.Handle, hz.Tag, tag)
		}
		if !world.IsSensor(hz.Handle) {
			t.Fatalf("expected hazard %s to be a sensor", hz.Tag)
		}
	}
	if !reflect.DeepEqual(hazardTags, []string{"MurderBox1", "MurderBox2"}) {
		t.Fatalf("expected numbered hazard tags, got %v", hazardTags)
	}
	if !strings.Contains(logs.String(), "degenerate") {
		t.Fatalf("expected degenerate object logged, got %q", logs.String())
	}

	cps := inst.Checkpoints()
	if len(cps) != 1 || cps[0].Tag != "Checkpoint1" {
		t.Fatalf("unexpected checkpoints %+v", cps)
	}
	if x, y := inst.Spawn(); x != 64 || y != 48 {
		t.Fatalf("expected map center spawn without PlayerSpawn, got (%v, %v)", x, y)
	}
}

func TestDisableCheckpoint(t *testing.T) {
	m := &Map{
		Width: 2, Height: 2, TileWidth: 32, TileHeight: 32,
		Solid:       make([]bool, 4),
		Checkpoints: []Object{{Rect: Rect{W: 16, H: 16}}},
	}
	world := newTestWorld()
	inst := Build(m, world, log.New(&bytes.Buffer{}))
	cp := inst.Checkpoints()[0]

	if !inst.DisableCheckpoint("Checkpoint1") {
		t.Fatalf("expected checkpoint disabled")
	}
	if world.HasShape(cp.Handle) {
		t.Fatalf("expected sensor removed from world")
	}
	if _, ok := inst.Tags().Tag(cp.Handle); ok {
		t.Fatalf("expected tag forgotten")
	}
	if cp.Active {
		t.Fatalf("expected checkpoint inactive")
	}
	if inst.DisableCheckpoint("Checkpoint1") {
		t.Fatalf("expected second disable to report false")
	}
	if inst.DisableCheckpoint("Checkpoint9") {
		t.Fatalf("expected unknown tag to report false")
	}
}

func TestBuildSolidsCollide(t *testing.T) {
	fsys := fstest.MapFS{"small.tmx": {Data: []byte(smallTMX)}}
	m, err := Load(fsys, "small.tmx")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	world := newTestWorld()
	Build(m, world, log.New(&bytes.Buffer{}))
	body, _ := world.AddDynamicBox(32, 20, 16, 16, 1, 0)
	for i := 0; i < 180; i++ {
		world.Step(1.0 / 60.0)
	}
	_, y := world.Position(body)
	// floor top is y=64, body half height is 8
	if y < 50 || y > 60 {
		t.Fatalf("expected body resting on merged floor near y=56, got %v", y)
	}
}
