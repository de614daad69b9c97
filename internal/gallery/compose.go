package gallery

import (
	"strings"
	"sync"
)

// Compose maps the ordered image list onto tile templates, appending
// sequences until every image has at least one slot. When the list is
// shorter than a sequence's slot count it wraps; when it is longer,
// additional sequences use the next template in the cycle.
func Compose(images []Image, vp Viewport) Layout {
	seqWidth := SequenceWidth(vp)
	layout := Layout{
		Viewport:      vp,
		Tiles:         []Tile{},
		Rows:          sequenceRows,
		SequenceWidth: seqWidth,
	}

	n := len(images)
	if n == 0 {
		return layout
	}

	templates := templatesFor(vp)
	spans := shapeSpans[vp]

	slot := 0
	for seq := 0; ; seq++ {
		tmpl := templates[seq%len(templates)]
		for band := 0; band < len(tmpl); band++ {
			col := seq * seqWidth
			for _, shape := range tmpl[band] {
				span := spans[shape]
				idx := slot % n
				layout.Tiles = append(layout.Tiles, Tile{
					Shape:      shape,
					Col:        col,
					Row:        band * bandRows,
					ColSpan:    span[0],
					RowSpan:    span[1],
					Sequence:   seq,
					ImageIndex: idx,
					Image:      images[idx],
				})
				col += span[0]
				slot++
			}
		}
		if slot >= n {
			layout.SequenceCount = seq + 1
			break
		}
	}

	layout.Columns = layout.SequenceCount * seqWidth
	return layout
}

// Composer memoizes Compose by image content and viewport. The source
// recomputed the layout on every state change; caching by content
// signature keeps recomputation off the hot path without changing the
// result.
type Composer struct {
	mu     sync.Mutex
	key    string
	layout Layout
}

// Compose returns the layout for the image list, reusing the previous
// result when the content and viewport are unchanged.
func (c *Composer) Compose(images []Image, vp Viewport) Layout {
	key := contentKey(images, vp)

	c.mu.Lock()
	defer c.mu.Unlock()
	if key == c.key {
		return c.layout
	}
	c.layout = Compose(images, vp)
	c.key = key
	return c.layout
}

func contentKey(images []Image, vp Viewport) string {
	var b strings.Builder
	b.WriteString(string(vp))
	for _, img := range images {
		b.WriteByte('|')
		if img.ID != "" {
			b.WriteString(img.ID)
		} else {
			b.WriteString(img.URL)
		}
	}
	return b.String()
}
