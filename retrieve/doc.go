// Package retrieve implements auto-merging retrieval: leaf-level vector
// search whose results collapse into their parent nodes whenever enough
// sibling leaves were retrieved together.
package retrieve
