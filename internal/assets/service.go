package assets

import (
	"context"
	"time"

	"github.com/emberoak/caterserve/internal/gallery"
)

// Service fronts the media-library client with the TTL cache and binds
// the configured gallery folder and logo asset.
type Service struct {
	client        *Client
	cache         *ttlCache
	galleryPrefix string
	logoPublicID  string
	now           func() time.Time
}

// NewService creates an assets service over the given client.
func NewService(client *Client, galleryPrefix, logoPublicID string) *Service {
	return &Service{
		client:        client,
		cache:         newTTLCache(CacheTTL),
		galleryPrefix: galleryPrefix,
		logoPublicID:  logoPublicID,
		now:           time.Now,
	}
}

// Gallery lists the gallery folder. Within the TTL the provider is not
// contacted; on provider failure an expired entry is served and flagged
// stale.
func (s *Service) Gallery(ctx context.Context) ([]Resource, bool, error) {
	return s.cachedList(ctx, "gallery:"+s.galleryPrefix, s.galleryPrefix)
}

func (s *Service) cachedList(ctx context.Context, key, prefix string) ([]Resource, bool, error) {
	now := s.now()
	if v, fresh, present := s.cache.get(key, now); present && fresh {
		return v.([]Resource), false, nil
	}

	resources, err := s.client.ListImages(ctx, prefix)
	if err != nil {
		if v, _, present := s.cache.get(key, now); present {
			return v.([]Resource), true, nil
		}
		return nil, false, err
	}

	s.cache.put(key, resources, now)
	return resources, false, nil
}

// Logo returns the configured logo asset, cached like a listing.
func (s *Service) Logo(ctx context.Context) (*Resource, bool, error) {
	key := "logo:" + s.logoPublicID
	now := s.now()
	if v, fresh, present := s.cache.get(key, now); present && fresh {
		return v.(*Resource), false, nil
	}

	r, err := s.client.GetResource(ctx, s.logoPublicID)
	if err != nil {
		if v, _, present := s.cache.get(key, now); present {
			return v.(*Resource), true, nil
		}
		return nil, false, err
	}

	s.cache.put(key, r, now)
	return r, false, nil
}

// Ping bypasses the cache entirely.
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// CachedEntries reports the current cache size, for the diagnostic
// endpoint.
func (s *Service) CachedEntries() int {
	return s.cache.len()
}

// GalleryImages adapts the gallery listing to the layout composer's
// image type. Implements gallery.ImageLister.
func (s *Service) GalleryImages(ctx context.Context) ([]gallery.Image, error) {
	resources, _, err := s.Gallery(ctx)
	if err != nil {
		return nil, err
	}
	images := make([]gallery.Image, 0, len(resources))
	for _, r := range resources {
		images = append(images, gallery.Image{
			ID:     r.PublicID,
			URL:    r.SecureURL,
			Width:  r.Width,
			Height: r.Height,
			Format: r.Format,
		})
	}
	return images, nil
}
