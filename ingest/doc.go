// Package ingest loads tabular data from external formats into typed
// datasets. It sits at the boundary of the pipeline: the loader declares
// each column's type and downstream stages trust the declaration, so a
// numeric-looking string column is only ever numeric if every cell parses
// or a schema override says so.
package ingest
