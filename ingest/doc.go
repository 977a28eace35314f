// Package ingest builds, enriches, embeds and persists hierarchical
// node forests from paginated documents.
package ingest
