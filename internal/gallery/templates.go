package gallery

// A sequence is a fixed block of columns tiled by two 2-row bands.
// Desktop bands hold three tiles (wide + square + narrow = 9 columns);
// mobile bands hold two (wide + square = 5 columns). Every template
// fills its sequence exactly, with no gaps and no overlaps.

const (
	desktopSequenceWidth = 9
	mobileSequenceWidth  = 5
	sequenceRows         = 4
	bandRows             = 2
)

// shapeSpans gives the column/row span of each shape per viewport.
var shapeSpans = map[Viewport]map[Shape][2]int{
	Desktop: {
		ShapeWide:   {4, 2},
		ShapeSquare: {2, 2},
		ShapeNarrow: {3, 2},
	},
	Mobile: {
		ShapeWide:   {3, 2},
		ShapeSquare: {2, 2},
	},
}

// template is two bands of shapes; each band spans two rows.
type template [2][]Shape

// desktopTemplates cycle as sequences are appended. Five fixed
// arrangements keep long galleries from visibly repeating.
var desktopTemplates = []template{
	{{ShapeWide, ShapeSquare, ShapeNarrow}, {ShapeNarrow, ShapeSquare, ShapeWide}},
	{{ShapeSquare, ShapeNarrow, ShapeWide}, {ShapeWide, ShapeNarrow, ShapeSquare}},
	{{ShapeNarrow, ShapeWide, ShapeSquare}, {ShapeSquare, ShapeWide, ShapeNarrow}},
	{{ShapeWide, ShapeNarrow, ShapeSquare}, {ShapeSquare, ShapeNarrow, ShapeWide}},
	{{ShapeSquare, ShapeWide, ShapeNarrow}, {ShapeNarrow, ShapeWide, ShapeSquare}},
}

// mobileTemplates alternate between two arrangements.
var mobileTemplates = []template{
	{{ShapeWide, ShapeSquare}, {ShapeSquare, ShapeWide}},
	{{ShapeSquare, ShapeWide}, {ShapeWide, ShapeSquare}},
}

func templatesFor(vp Viewport) []template {
	if vp == Mobile {
		return mobileTemplates
	}
	return desktopTemplates
}

// SequenceWidth returns the column width of one sequence for the viewport.
func SequenceWidth(vp Viewport) int {
	if vp == Mobile {
		return mobileSequenceWidth
	}
	return desktopSequenceWidth
}
