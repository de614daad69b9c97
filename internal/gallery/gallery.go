// Package gallery computes the event-gallery grid layout and drives its
// paged navigation. The composer maps a flat image list onto fixed tile
// templates repeated across sequences; the navigator pages a pixel
// offset across the composed grid; the lightbox steps through the flat
// list. Everything here is pure state — rendering belongs to the client.
package gallery

// Viewport selects the tile set and sequence geometry.
type Viewport string

const (
	Desktop Viewport = "desktop"
	Mobile  Viewport = "mobile"
)

// Shape names one of the fixed tile geometries.
type Shape string

const (
	ShapeWide   Shape = "wide"
	ShapeSquare Shape = "square"
	ShapeNarrow Shape = "narrow"
)

// Image is an opaque reference into the media library.
type Image struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
}

// Tile is one placed cell group in the composed grid. Col and Row are
// zero-based absolute grid coordinates; Col already includes the
// sequence offset.
type Tile struct {
	Shape      Shape `json:"shape"`
	Col        int   `json:"col"`
	Row        int   `json:"row"`
	ColSpan    int   `json:"col_span"`
	RowSpan    int   `json:"row_span"`
	Sequence   int   `json:"sequence"`
	ImageIndex int   `json:"image_index"`
	Image      Image `json:"image"`
}

// Layout is the composed grid for one image list and viewport.
type Layout struct {
	Viewport      Viewport `json:"viewport"`
	Tiles         []Tile   `json:"tiles"`
	Columns       int      `json:"columns"`
	Rows          int      `json:"rows"`
	SequenceWidth int      `json:"sequence_width"`
	SequenceCount int      `json:"sequence_count"`
}

// Dedupe returns the image list with later duplicates (by ID, falling
// back to URL) removed, preserving order. The lightbox steps through
// this list rather than the tile list, which may wrap images.
func Dedupe(images []Image) []Image {
	seen := make(map[string]bool, len(images))
	out := make([]Image, 0, len(images))
	for _, img := range images {
		key := img.ID
		if key == "" {
			key = img.URL
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, img)
	}
	return out
}
