package badger

import (
	"fmt"

	"github.com/poiesic/canopy/core"
)

// Key prefixes for different data types
const (
	nodeRecordPrefix       = "nodrec"
	leafVectorPrefix       = "nodvec"
	collectionRecordPrefix = "colrec"
)

// makeNodeKey generates a key for a node by collection and ID.
func makeNodeKey(collection string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", nodeRecordPrefix, collection, id))
}

// makeNodePrefix generates the key prefix covering every node in a collection.
func makeNodePrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", nodeRecordPrefix, collection))
}

// makeLeafVectorKey generates a key for a leaf embedding by collection and node ID.
func makeLeafVectorKey(collection string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", leafVectorPrefix, collection, id))
}

// makeLeafVectorPrefix generates the key prefix covering every leaf embedding
// in a collection.
func makeLeafVectorPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", leafVectorPrefix, collection))
}

// makeCollectionKey generates a key for a collection record by name.
func makeCollectionKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", collectionRecordPrefix, name))
}

// makeCollectionPrefix generates the key prefix covering all collection records.
func makeCollectionPrefix() []byte {
	return []byte(collectionRecordPrefix + ":")
}
