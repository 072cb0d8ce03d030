// Package paging partitions a prepared deck into fixed-size pages and
// tracks a bounded cursor over them.
//
// Pages are contiguous, non-overlapping row windows: with n rows and page
// size k there are exactly ceil(n/k) pages and only the last may be short.
// Page extraction returns views over the deck's scaled matrix, never copies,
// so requesting a page is cheap regardless of dataset size.
//
// The cursor is deliberately forgiving: stepping past either end is a no-op
// rather than an error, which is what interactive viewers want from held-down
// arrow keys. Random access with Get and Goto does range-check.
package paging
