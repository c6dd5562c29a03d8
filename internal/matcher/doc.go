// Package matcher scores and ranks cataloged units against a Query.
//
// Matching runs in two steps. Hard filters (category, domain, protection,
// minimum version) eliminate units outright. The survivors are then scored
// on up to four soft criteria (tags, capability keywords, input and output
// port requirements); each criterion the query specifies contributes its
// sub-score to a numerator and one to a denominator, so criteria the query
// does not mention never penalize a unit. A query without soft criteria
// scores every surviving unit 1.0.
//
// Free text reaches the matcher through an IntentParser, which turns it
// into the same Query shape.
package matcher
