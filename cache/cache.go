// Package cache provides caching for remote content-store metadata reads:
// site locale configuration, page, component and collection listings.
// Translations themselves are never cached.
package cache

// MetadataCache is the interface for metadata caching.
type MetadataCache interface {
	// Get retrieves a cached value. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a value in the cache.
	Set(key string, value string) error
}
