package query

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/timetable"
)

type Search struct {
	Date ctdf.Date

	OriginRef      string
	DestinationRef string

	Options timetable.SearchOptions
}

func (s Search) CacheKey() string {
	hash := sha256.New()

	optionsJSON, _ := json.Marshal(s.Options)
	hash.Write(optionsJSON)

	return fmt.Sprintf("search:%s:%s:%s:%x", s.Date, s.OriginRef, s.DestinationRef, hash.Sum(nil))
}
