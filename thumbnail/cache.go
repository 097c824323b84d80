// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thumbnail

import "sync"

// Cache is a concurrency-safe map from thumbnail keys to rendered
// thumbnails. Entries are write-once: the first value added for a key
// is kept until the cache is reset.
type Cache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewCache returns a new empty cache.
func NewCache() *Cache {
	return &Cache{m: map[string]string{}}
}

// Get returns the thumbnail for the given key and whether there is one.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Add adds the given thumbnail for the given key if there is none yet,
// and returns the value that is in the cache afterward.
func (c *Cache) Add(key, value string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[key]; ok {
		return v
	}
	c.m[key] = value
	return value
}

// Len returns the number of cached thumbnails.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Reset removes all cached thumbnails.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
}
