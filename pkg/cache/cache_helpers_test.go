package cache

import "os"

// writeCorrupt overwrites a cache file with bytes that are not a valid
// cacheEntry payload.
func writeCorrupt(path string) error {
	return os.WriteFile(path, []byte("not json"), 0644)
}
