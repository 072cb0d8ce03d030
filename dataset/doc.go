// Package dataset defines the columnar data model consumed by the facedeck
// pipeline, plus column-role classification and row sorting.
//
// This package contains the types every later stage builds on, including:
//   - Dataset: an ordered, rectangular collection of named typed columns
//   - Column constructors: Strings, Numbers, Factor
//   - Classification: the textual/categorical/numeric role of each column
//   - SortBy: stable row reordering that preserves column alignment
//
// Datasets are immutable after construction. Pipeline stages derive new
// artifacts (label sets, feature matrices, pages) instead of mutating the
// source, so one Dataset can safely back several concurrent readers.
package dataset
