// Package search decides whether an application name matches a typed query
// and orders matching applications by how relevant they look.
//
// Matches and Rank are pure functions over already-resolved values and are
// safe for concurrent use.
//
// # Matching
//
// A name matches when any of these tests succeeds, in order:
//
//  1. Substring: the name contains the query.
//  2. Initials: the query has at least two characters, the name has at least
//     two words, and the first letters of the words contain the query
//     ("gm" matches "Google Maps").
//  3. Subsequence: every query character appears in the name in order, with
//     gaps allowed.
//
// All comparisons are case-insensitive. An empty query matches everything; a
// whitespace query is matched literally.
//
// # Ranking
//
// Rank buckets candidates into tiers by the literal relationship between the
// name and the query (prefix, contains, anything else) and sorts by tier, then
// by lower-cased name. The tier is independent of which matching test
// succeeded.
package search
