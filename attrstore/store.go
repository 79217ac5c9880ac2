// Package attrstore is the external AttributeStore boundary spec.md §4.8
// describes: a key→BondAttributes lookup the core consumes through a
// blocking, synchronous interface. How attributes get populated (vendor
// download, on-disk cache, a warehouse) is entirely outside the core's
// concern; this package supplies an in-memory reference implementation
// plus a JSON file loader and a caching decorator.
package attrstore

import (
	"time"

	"github.com/swhysc/tbond/bondattr"
)

// Store is the contract the core requires of an attribute-data provider.
type Store interface {
	Get(code string) (*bondattr.BondAttributes, bool, error)
	Put(code string, attrs *bondattr.BondAttributes) error
	Contains(code string) bool
}

// Retriever resolves a BondAttributes value for (date, code), allowing
// date-sensitive retrieval strategies (e.g. point-in-time vendor data).
// Most Store-backed retrievers ignore the date.
type Retriever interface {
	Retrieve(calculatingDate time.Time, bondCode string) (*bondattr.BondAttributes, error)
}
