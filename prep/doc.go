// Package prep turns a classified dataset into render-ready artifacts: a
// label set, a cleaned feature matrix, and globally scaled values.
//
// The stages compose in a fixed order, and Prepare runs them all:
//   - ExtractLabels: textual and categorical columns become per-row labels
//   - Clean: drops, folds, or encodes non-numeric columns into a Matrix
//   - Scaler: fits global per-column min/max once, maps values onto [-1, 1]
//
// Scaling always happens over the entire dataset before any paging, so a
// value's position in [-1, 1] means the same thing on every page. The
// resulting Deck carries a ULID version that identifies this prepared
// snapshot for downstream caching.
package prep
