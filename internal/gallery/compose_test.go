package gallery

import (
	"fmt"
	"testing"
)

func makeImages(n int) []Image {
	images := make([]Image, n)
	for i := range images {
		images[i] = Image{
			ID:  fmt.Sprintf("img-%d", i),
			URL: fmt.Sprintf("https://res.example.com/gallery/img-%d.jpg", i),
		}
	}
	return images
}

func TestComposeEmpty(t *testing.T) {
	layout := Compose(nil, Desktop)
	if len(layout.Tiles) != 0 {
		t.Fatalf("got %d tiles, want 0", len(layout.Tiles))
	}
	if layout.Columns != 0 || layout.SequenceCount != 0 {
		t.Errorf("empty layout has columns=%d sequences=%d", layout.Columns, layout.SequenceCount)
	}
}

func TestComposeSingleImage(t *testing.T) {
	layout := Compose(makeImages(1), Desktop)
	if layout.SequenceCount != 1 {
		t.Fatalf("got %d sequences, want 1", layout.SequenceCount)
	}
	if len(layout.Tiles) != 6 {
		t.Fatalf("got %d tiles, want 6", len(layout.Tiles))
	}
	for i, tile := range layout.Tiles {
		if tile.ImageIndex != 0 {
			t.Errorf("tile %d image index = %d, want 0", i, tile.ImageIndex)
		}
	}
}

func TestComposeShortListWraps(t *testing.T) {
	layout := Compose(makeImages(2), Desktop)
	if layout.SequenceCount != 1 {
		t.Fatalf("got %d sequences, want 1", layout.SequenceCount)
	}
	want := []int{0, 1, 0, 1, 0, 1}
	for i, tile := range layout.Tiles {
		if tile.ImageIndex != want[i] {
			t.Errorf("tile %d image index = %d, want %d", i, tile.ImageIndex, want[i])
		}
	}
}

// Every image gets at least one tile, no two tiles share a grid cell,
// every sequence is filled exactly, and the total column count is a
// multiple of the sequence width.
func TestComposeInvariants(t *testing.T) {
	for _, vp := range []Viewport{Desktop, Mobile} {
		for _, n := range []int{1, 2, 3, 5, 6, 7, 12, 23, 40} {
			t.Run(fmt.Sprintf("%s/%d", vp, n), func(t *testing.T) {
				layout := Compose(makeImages(n), vp)
				seqWidth := SequenceWidth(vp)

				if layout.Columns%seqWidth != 0 {
					t.Errorf("columns %d not a multiple of %d", layout.Columns, seqWidth)
				}

				covered := make(map[int]bool)
				cells := make(map[[2]int]int)
				for i, tile := range layout.Tiles {
					covered[tile.ImageIndex] = true
					if tile.Col < 0 || tile.Col+tile.ColSpan > layout.Columns {
						t.Errorf("tile %d overflows columns: col=%d span=%d", i, tile.Col, tile.ColSpan)
					}
					if tile.Row < 0 || tile.Row+tile.RowSpan > layout.Rows {
						t.Errorf("tile %d overflows rows: row=%d span=%d", i, tile.Row, tile.RowSpan)
					}
					for c := tile.Col; c < tile.Col+tile.ColSpan; c++ {
						for r := tile.Row; r < tile.Row+tile.RowSpan; r++ {
							if prev, taken := cells[[2]int{c, r}]; taken {
								t.Fatalf("cell (%d,%d) used by tiles %d and %d", c, r, prev, i)
							}
							cells[[2]int{c, r}] = i
						}
					}
				}

				for idx := 0; idx < n; idx++ {
					if !covered[idx] {
						t.Errorf("image %d has no tile", idx)
					}
				}

				// Filled sequences: every cell of the grid is occupied.
				if got, want := len(cells), layout.Columns*layout.Rows; got != want {
					t.Errorf("occupied %d cells, want %d", got, want)
				}
			})
		}
	}
}

func TestComposeDesktop23(t *testing.T) {
	layout := Compose(makeImages(23), Desktop)

	// Six slots per desktop sequence: 23 images need four sequences.
	if layout.SequenceCount != 4 {
		t.Fatalf("got %d sequences, want 4", layout.SequenceCount)
	}
	if len(layout.Tiles) != 24 {
		t.Fatalf("got %d tiles, want 24", len(layout.Tiles))
	}
	if layout.Columns != 36 {
		t.Errorf("got %d columns, want 36", layout.Columns)
	}

	// The final slot wraps around to the first image.
	last := layout.Tiles[23]
	if last.ImageIndex != 0 {
		t.Errorf("last tile image index = %d, want 0", last.ImageIndex)
	}

	// Sequences cycle through the template list in order.
	for seq := 0; seq < 4; seq++ {
		tmpl := desktopTemplates[seq%len(desktopTemplates)]
		start := seq * 6
		for i, shape := range append(append([]Shape{}, tmpl[0]...), tmpl[1]...) {
			if layout.Tiles[start+i].Shape != shape {
				t.Errorf("sequence %d tile %d shape = %s, want %s", seq, i, layout.Tiles[start+i].Shape, shape)
			}
		}
	}
}

func TestComposeMobileShapes(t *testing.T) {
	layout := Compose(makeImages(8), Mobile)
	if layout.SequenceWidth != 5 {
		t.Fatalf("mobile sequence width = %d, want 5", layout.SequenceWidth)
	}
	for i, tile := range layout.Tiles {
		if tile.Shape == ShapeNarrow {
			t.Errorf("tile %d is narrow; mobile has no narrow shape", i)
		}
	}
}

func TestComposerMemoizes(t *testing.T) {
	c := &Composer{}
	images := makeImages(10)

	first := c.Compose(images, Desktop)
	second := c.Compose(images, Desktop)
	if &first.Tiles[0] != &second.Tiles[0] {
		t.Error("expected identical cached tile slice for unchanged content")
	}

	// A viewport switch invalidates the cache.
	third := c.Compose(images, Mobile)
	if third.Viewport != Mobile {
		t.Errorf("got viewport %s, want mobile", third.Viewport)
	}

	// Changed content invalidates it too.
	fourth := c.Compose(makeImages(11), Mobile)
	if len(fourth.Tiles) == len(third.Tiles) && fourth.SequenceCount == third.SequenceCount {
		// Different counts should change at least one of these for 10 vs 11.
		t.Log("layouts coincidentally equal in size; checking coverage instead")
	}
	covered := make(map[int]bool)
	for _, tile := range fourth.Tiles {
		covered[tile.ImageIndex] = true
	}
	if !covered[10] {
		t.Error("image 10 missing after cache invalidation")
	}
}

func TestDedupe(t *testing.T) {
	images := []Image{
		{ID: "a"}, {ID: "b"}, {ID: "a"}, {URL: "u1"}, {URL: "u1"}, {ID: "c"},
	}
	out := Dedupe(images)
	if len(out) != 4 {
		t.Fatalf("got %d images, want 4", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" || out[2].URL != "u1" || out[3].ID != "c" {
		t.Errorf("order not preserved: %v", out)
	}
}
