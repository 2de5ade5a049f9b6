package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/corona10/goimagehash"

	"minatostudio/captioner/captioner"
)

// captionCache remembers caption results across runs, keyed by a perceptual
// hash of the image so re-encoded or lightly edited copies still hit.
type captionCache struct {
	mu  sync.RWMutex
	m   map[string]captioner.CaptionResult
	dir string
}

func newCaptionCache(dir string) *captionCache {
	return &captionCache{m: make(map[string]captioner.CaptionResult), dir: dir}
}

// cacheKeyFor derives the cache key from the image's average hash and the
// requested tone.
func cacheKeyFor(img image.Image, tone captioner.Tone) (string, error) {
	hash, err := goimagehash.AverageHash(img)
	if err != nil {
		return "", fmt.Errorf("hash image: %w", err)
	}
	return fmt.Sprintf("%016x_%s", hash.GetHash(), tone), nil
}

func (c *captionCache) get(key string) (captioner.CaptionResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *captionCache) put(key string, v captioner.CaptionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

func (c *captionCache) load(key string) (captioner.CaptionResult, bool, error) {
	var result captioner.CaptionResult
	if c.dir == "" {
		return result, false, nil
	}
	path := filepath.Join(c.dir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, false, nil
		}
		return result, false, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false, fmt.Errorf("cache file broken: %s", path)
	}
	return result, true, nil
}

func (c *captionCache) save(key string, v captioner.CaptionResult) error {
	if c.dir == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	path := filepath.Join(c.dir, key+".json")
	return os.WriteFile(path, data, 0o644)
}

// lookup checks memory first, then disk.
func (c *captionCache) lookup(key string) (captioner.CaptionResult, bool) {
	if v, ok := c.get(key); ok {
		return v, true
	}
	v, ok, err := c.load(key)
	if err != nil || !ok {
		return captioner.CaptionResult{}, false
	}
	v.FromCache = true
	c.put(key, v)
	return v, true
}

// store writes through to memory and disk.
func (c *captionCache) store(key string, v captioner.CaptionResult) {
	c.put(key, v)
	_ = c.save(key, v)
}
