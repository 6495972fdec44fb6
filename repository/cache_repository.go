package repository

// CacheRepository stores computed quotes by key. Misses and backend errors
// both report ok=false; callers recompute in either case.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
