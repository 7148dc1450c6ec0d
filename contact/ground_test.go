package contact

import "testing"

func TestGroundContacts(t *testing.T) {
	cases := []struct {
		name  string
		ops   string // a = add, r = remove
		want  bool
		wantN int
	}{
		{"empty", "", false, 0},
		{"single_touch", "a", true, 1},
		{"touch_then_leave", "ar", false, 0},
		{"two_tiles_one_leaves", "aar", true, 1},
		{"two_tiles_both_leave", "aarr", false, 0},
		{"interleaved", "araar", true, 1},
		{"unpaired_end_saturates", "rra", true, 1},
		{"unpaired_end_after_pair", "arr", false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var g GroundContacts
			for _, op := range c.ops {
				switch op {
				case 'a':
					g.Add()
				case 'r':
					g.Remove()
				}
			}
			if g.OnGround() != c.want {
				t.Fatalf("expected OnGround=%v, got %v", c.want, g.OnGround())
			}
			if g.Count() != c.wantN {
				t.Fatalf("expected count %d, got %d", c.wantN, g.Count())
			}
		})
	}
}

func TestGroundContactsHandle(t *testing.T) {
	var g GroundContacts
	g.Handle(Event{Began: true, Tag: "pawbs"})
	g.Handle(Event{Began: true, Tag: "pawbs"})
	g.Handle(Event{Began: false, Tag: "pawbs"})
	if !g.OnGround() {
		t.Fatalf("expected grounded after two begins and one end")
	}
	g.Reset()
	if g.OnGround() || g.Count() != 0 {
		t.Fatalf("expected reset to clear contacts, got %d", g.Count())
	}
}

func TestNilGroundContacts(t *testing.T) {
	var g *GroundContacts
	g.Add()
	g.Remove()
	if g.OnGround() {
		t.Fatalf("expected nil counter to be airborne")
	}
}
