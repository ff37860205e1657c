package source

import "errors"

var UnsupportedSourceError = errors.New("source does not support this query")

var NotFoundError = errors.New("could not find a matching record")
