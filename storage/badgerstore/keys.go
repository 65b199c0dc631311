package badgerstore

import (
	"fmt"
	"strings"

	"github.com/poiesic/clipmind/core"
)

// Key prefixes for different data types. Namespaces are embedded in keys, so
// they must not contain the ':' separator; constructors reject those.
const (
	recordPrefix = "vecrec"
	urlPrefix    = "vecurl"
)

// makeRecordKey generates the primary key for a vector record.
func makeRecordKey(namespace, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", recordPrefix, namespace, id))
}

// makeRecordPrefix generates the iteration prefix for all records in a namespace.
func makeRecordPrefix(namespace string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", recordPrefix, namespace))
}

// makeURLKey generates the duplicate-detection index key for a video URL.
// The URL is trimmed and hashed so arbitrary URL characters never collide
// with the key separator.
func makeURLKey(namespace, url string) []byte {
	urlHash := uint64(core.IDFromContent(strings.TrimSpace(url)))
	return []byte(fmt.Sprintf("%s:%s:%016x", urlPrefix, namespace, urlHash))
}

// namespaceFromRecordKey extracts the namespace from a record key.
// Returns "" for keys that are not record keys.
func namespaceFromRecordKey(key []byte) string {
	parts := strings.SplitN(string(key), ":", 3)
	if len(parts) != 3 || parts[0] != recordPrefix {
		return ""
	}
	return parts[1]
}
