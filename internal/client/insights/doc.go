// Package insights holds the pure computations the views derive from store
// state: progress clamping, budget allocation, deadline urgency, journal
// filtering and dashboard summaries.
package insights
