package gallery

// Lightbox steps through the de-duplicated image list. Next and Prev
// saturate at the boundaries rather than wrapping. The mobile variant
// additionally tracks a screen-orientation unlock request while open;
// the client applies it, the server only models the state.
type Lightbox struct {
	images []Image
	index  int
	open   bool
	mobile bool
}

// NewLightbox creates a closed lightbox over the given image list.
// The list is de-duplicated on entry.
func NewLightbox(images []Image, mobile bool) *Lightbox {
	return &Lightbox{images: Dedupe(images), mobile: mobile}
}

// Open shows the image at index i. Out-of-range indexes are rejected.
func (l *Lightbox) Open(i int) bool {
	if i < 0 || i >= len(l.images) {
		return false
	}
	l.index = i
	l.open = true
	return true
}

// Close dismisses the lightbox.
func (l *Lightbox) Close() {
	l.open = false
}

// Next steps forward; it is a no-op at the last image or while closed.
func (l *Lightbox) Next() bool {
	if !l.open || l.index >= len(l.images)-1 {
		return false
	}
	l.index++
	return true
}

// Prev steps backward; it is a no-op at the first image or while closed.
func (l *Lightbox) Prev() bool {
	if !l.open || l.index <= 0 {
		return false
	}
	l.index--
	return true
}

// Current returns the displayed image, if the lightbox is open.
func (l *Lightbox) Current() (Image, bool) {
	if !l.open || len(l.images) == 0 {
		return Image{}, false
	}
	return l.images[l.index], true
}

// Index returns the current position.
func (l *Lightbox) Index() int { return l.index }

// IsOpen reports whether the lightbox is showing.
func (l *Lightbox) IsOpen() bool { return l.open }

// OrientationUnlockRequested reports whether the client should release
// its portrait orientation lock: only on mobile, and only while open.
// When it turns false again the portrait lock is restored.
func (l *Lightbox) OrientationUnlockRequested() bool {
	return l.mobile && l.open
}
