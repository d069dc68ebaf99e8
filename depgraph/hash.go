package depgraph

import "github.com/minio/highwayhash"

// key is the fixed 32-byte highwayhash key; ids hash the same way in
// every run.
var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// InternID hashes a qualified-path id into a stable uint64 handle. The
// graph's edge-dedup index keys on interned handles instead of
// concatenated id strings, so its hot-path map keys stay fixed-size
// however long the nested qualified paths grow; node and edge ids
// themselves remain strings, so nothing needs translating back when
// the graph is serialized.
func InternID(id string) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	if _, err := hash.Write([]byte(id)); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}
