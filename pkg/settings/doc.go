// Package settings keeps a continuously refreshed view of the avatar
// configuration.
//
// A [Synchronizer] holds three values that always change together: the
// current configuration (or none), a loading flag that is true only until
// the first fetch resolves, and an error flag that reflects the most recent
// applied fetch. A failed fetch never clears a previously fetched or seeded
// configuration.
//
// # Usage
//
//	s := settings.New(fetcher, seed, settings.WithLogger(logger))
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//	defer s.Stop()
//
//	st := s.Snapshot()
//	if st.Config != nil { ... }
//
// When seed is nil the first fetch is issued on Start; otherwise the
// seed is shown immediately and the first fetch happens one interval later.
//
// # Ordering
//
// Fetches may overlap when the source is slow. Each fetch carries a
// sequence number and a result is applied only if it is newer than the last
// applied one, so a slow early response can never overwrite a later one.
//
// # Teardown
//
// Stop is final. After it returns no fetch is issued and no state change is
// applied, even if a request that was in flight resolves later.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package settings
