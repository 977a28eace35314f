// Package enrich generates summaries for non-leaf nodes and prepends
// ancestor context breadcrumbs to leaf text prior to embedding.
package enrich
