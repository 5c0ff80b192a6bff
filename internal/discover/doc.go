// Gemdex - Movie Catalog Discovery and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gemdex

// Package discover implements the hidden-gem ranking engine: surfacing
// highly rated movies that mainstream popularity has passed by.
//
// # Architecture
//
// The package splits into two layers:
//
//   - Pure ranking: Discover, Similar, and GemScore transform an
//     in-memory catalog snapshot into ranked results. They keep no
//     state, touch no storage, and cannot fail.
//   - Service: wraps the pure layer with catalog loading through the
//     CatalogProvider interface, parameter validation, structured
//     logging, and Prometheus metrics.
//
// The CatalogProvider interface allows integration with the catalog
// package without creating circular imports.
//
// # Ranking Model
//
// A movie qualifies as a gem candidate when its rating clears a floor,
// its popularity stays under a ceiling, and enough votes back the
// rating. Survivors are scored with
//
//	gem_score = (rating / 10.0) * (100.0 / (popularity + 10.0))
//
// and ordered by one of four sort modes: gem score, raw rating, least
// popular first, or newest first. Every mode breaks ties down to the
// movie ID, so a given catalog and parameter set always produce the
// same ordering.
//
// # Determinism
//
// Rankings are reproducible by construction. There is no randomness, no
// clock dependence in the ordering, and no cache inside the engine;
// repeated calls over the same snapshot return identical pages. Layers
// that can observe the catalog changing (the stats service, the CLI)
// decide for themselves what to cache.
//
// # Usage
//
//	svc, err := discover.NewService(store, logger)
//	if err != nil {
//	    return err
//	}
//
//	params := discover.DefaultParams()
//	params.Genre = 878 // science fiction
//	params.Sort = discover.SortMostHidden
//
//	result, err := svc.Discover(ctx, params)
//	if err != nil {
//	    return err
//	}
//	for _, m := range result.Movies {
//	    fmt.Println(m.Title, discover.GemScore(m.Rating, m.Popularity))
//	}
//
// # Thread Safety
//
// The pure functions are safe for concurrent use by construction. The
// Service is safe for concurrent use as long as its CatalogProvider is.
package discover
