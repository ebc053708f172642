package core

import (
	"bangarr/internal/clients/sonarr"
	"bangarr/internal/utils"
)

// SeriesLookup is the slice of the Sonarr client the resolver depends on.
type SeriesLookup interface {
	LookupSeries(term string) ([]sonarr.Series, error)
}

// IDCache is the slice of the TVDB cache repository the resolver depends on.
type IDCache interface {
	Get(seriesName string) (int, bool, error)
	Set(seriesName string, tvdbID int) error
}

// Resolver maps a series display name to a TVDB id, consulting the cache
// before Sonarr. Lookup failures degrade to the 0 sentinel; only storage
// failures are returned as errors.
type Resolver struct {
	cache  IDCache
	sonarr SeriesLookup
	logger *utils.Logger
}

func NewResolver(cache IDCache, sonarr SeriesLookup, logger *utils.Logger) *Resolver {
	return &Resolver{
		cache:  cache,
		sonarr: sonarr,
		logger: logger,
	}
}

// Resolve returns the TVDB id for seriesName, or 0 when the name cannot be
// resolved. A fresh cache entry short-circuits the Sonarr call entirely.
func (r *Resolver) Resolve(seriesName string) (int, error) {
	cached, ok, err := r.cache.Get(seriesName)
	if err != nil {
		return 0, err
	}
	if ok {
		r.logger.Debug("Cache hit for series:", seriesName)
		return cached, nil
	}

	results, err := r.sonarr.LookupSeries(seriesName)
	if err != nil {
		r.logger.Error("Sonarr lookup failed for", seriesName+":", err)
		return 0, nil
	}
	if len(results) == 0 {
		r.logger.Warn("No series found on Sonarr for:", seriesName)
		return 0, nil
	}

	// First result wins; Sonarr's own ranking is authoritative
	tvdbID := results[0].TVDBId
	if err := r.cache.Set(seriesName, tvdbID); err != nil {
		return 0, err
	}
	return tvdbID, nil
}
