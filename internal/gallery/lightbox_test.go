package gallery

import "testing"

func TestLightboxStepping(t *testing.T) {
	lb := NewLightbox(makeImages(3), false)

	if _, ok := lb.Current(); ok {
		t.Fatal("closed lightbox should have no current image")
	}
	if lb.Next() {
		t.Fatal("Next on a closed lightbox should be a no-op")
	}

	if !lb.Open(1) {
		t.Fatal("Open(1) rejected")
	}
	cur, _ := lb.Current()
	if cur.ID != "img-1" {
		t.Errorf("current = %q, want img-1", cur.ID)
	}

	if !lb.Next() {
		t.Fatal("Next rejected")
	}
	if lb.Next() {
		t.Error("Next at last image should be a no-op")
	}
	if lb.Index() != 2 {
		t.Errorf("index = %d, want 2", lb.Index())
	}

	lb.Prev()
	lb.Prev()
	if lb.Prev() {
		t.Error("Prev at first image should be a no-op")
	}
	if lb.Index() != 0 {
		t.Errorf("index = %d, want 0", lb.Index())
	}
}

func TestLightboxOpenBounds(t *testing.T) {
	lb := NewLightbox(makeImages(2), false)
	if lb.Open(-1) {
		t.Error("Open(-1) should be rejected")
	}
	if lb.Open(2) {
		t.Error("Open past the end should be rejected")
	}
}

func TestLightboxDedupesInput(t *testing.T) {
	images := []Image{{ID: "a"}, {ID: "a"}, {ID: "b"}}
	lb := NewLightbox(images, false)

	lb.Open(0)
	lb.Next()
	if lb.Next() {
		t.Error("expected two images after dedupe")
	}
}

func TestLightboxOrientation(t *testing.T) {
	lb := NewLightbox(makeImages(2), true)

	if lb.OrientationUnlockRequested() {
		t.Error("closed lightbox should not request an orientation unlock")
	}
	lb.Open(0)
	if !lb.OrientationUnlockRequested() {
		t.Error("open mobile lightbox should request an orientation unlock")
	}
	lb.Close()
	if lb.OrientationUnlockRequested() {
		t.Error("closing should restore the portrait lock")
	}

	desktop := NewLightbox(makeImages(2), false)
	desktop.Open(0)
	if desktop.OrientationUnlockRequested() {
		t.Error("desktop lightbox never requests an orientation unlock")
	}
}
