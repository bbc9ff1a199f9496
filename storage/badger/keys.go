package badger

import (
	"fmt"
	"strings"

	"github.com/poiesic/launchkit/storage"
)

// Key prefixes for different data types
const (
	namespaceValuePrefix  = "ns"
	namespaceMarkerPrefix = "nsmeta"
	keySeparator          = ":"
)

// validateNamespaceName rejects names that would break the key layout.
func validateNamespaceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", storage.ErrInvalidNamespace)
	}
	if strings.Contains(name, keySeparator) {
		return fmt.Errorf("%w: %q contains %q", storage.ErrInvalidNamespace, name, keySeparator)
	}
	return nil
}

// makeValueKey generates the key for one value of a namespace.
// Format: ns:namespace:key
func makeValueKey(namespace, key string) []byte {
	return []byte(namespaceValuePrefix + keySeparator + namespace + keySeparator + key)
}

// makeValuePrefix generates the iteration prefix for all values of a namespace.
// Format: ns:namespace:
func makeValuePrefix(namespace string) []byte {
	return []byte(namespaceValuePrefix + keySeparator + namespace + keySeparator)
}

// makeMarkerKey generates the key recording that a namespace exists.
// Format: nsmeta:namespace
func makeMarkerKey(namespace string) []byte {
	return []byte(namespaceMarkerPrefix + keySeparator + namespace)
}

// makeMarkerPrefix generates the iteration prefix over all namespace markers.
func makeMarkerPrefix() []byte {
	return []byte(namespaceMarkerPrefix + keySeparator)
}

// userKey strips the namespace prefix from a stored value key.
func userKey(namespace string, stored []byte) string {
	return strings.TrimPrefix(string(stored), string(makeValuePrefix(namespace)))
}
