package dataaggregator

import (
	"reflect"
)

type DataSource interface {
	GetName() string
	Supports() []reflect.Type
	Lookup(any) (interface{}, error)
}

// Cacheable queries are stored in the results cache under their CacheKey
type Cacheable interface {
	CacheKey() string
}
