// Package pdf extracts per-page text from PDF documents for ingestion.
package pdf
