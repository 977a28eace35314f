// Package chunk builds a document's hierarchical node forest from
// page-level text units.
//
// Build concatenates a document's pages into one text stream, then splits
// it level by level: first at the largest chunk size to produce the root
// nodes, then each root's span at the next size, down to the leaf level.
// Splits land on natural text boundaries (paragraph, sentence, word)
// where possible, and every node's page range is derived from the
// PageUnit offsets its span covers, so metadata never has to be re-tagged
// by hand at any level.
package chunk
