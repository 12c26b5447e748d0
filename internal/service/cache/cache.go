package cache

import "time"

// BytesCache stores pre-rendered response bodies with a TTL. It sits in
// front of JSON encoding so repeated reads skip the whole render path.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
