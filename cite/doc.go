// Package cite reconstructs page-level citations from retrieved nodes,
// merging consecutive pages into ranges and rendering them with links
// that open the source document at the right page.
package cite
