// Package cache provides a small generic LRU cache.
//
// The Passport client keeps decoded field values in one LRU per client so
// repeated reads inside a request do not hit the account service. The cache
// is bounded: once capacity is reached the least recently used entry is
// dropped, which only costs a later remote fetch.
//
// # Usage
//
//	values := cache.NewLRU[string, any](256)
//
//	values.Put("theme", "dark")
//	v, ok := values.Get("theme") // marks "theme" as recently used
//
//	if values.Contains("theme") { // does not touch recency
//		// ...
//	}
//
//	values.Remove("theme")
//
// Eviction callbacks can be registered with WithOnEvict; they run with the
// cache lock held and must not call back into the cache.
//
// All methods are safe for concurrent use.
package cache
