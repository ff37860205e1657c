package dataaggregator

import (
	"context"
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source/cachedresults"
)

type Aggregator struct {
	Sources []DataSource

	Cache *cachedresults.Cache
}

var GlobalAggregator Aggregator

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

func Lookup[T any](query any) (T, error) {
	return LookupFrom[T](&GlobalAggregator, query)
}

func LookupFrom[T any](a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	var cacheKey string
	if cacheable, ok := query.(Cacheable); ok && a.Cache != nil {
		cacheKey = cacheable.CacheKey()

		var cached T
		if found, _ := a.Cache.Get(context.Background(), cacheKey, &cached); found {
			log.Debug().Str("key", cacheKey).Msg("Lookup served from cache")
			return cached, nil
		}
	}

	for _, dataSource := range a.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, err := dataSource.Lookup(query)
		if errors.Is(err, source.UnsupportedSourceError) {
			continue
		}
		if err != nil {
			return empty, err
		}

		if returnValue == nil {
			return empty, nil
		}

		result := returnValue.(T)

		if cacheKey != "" {
			if err := a.Cache.Set(context.Background(), cacheKey, result); err != nil {
				log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache lookup")
			}
		}

		return result, nil
	}

	return empty, errors.New("failed to find a matching data source for type")
}
