// Package model defines the core types for the lead ingestion pipeline.
package model

// RawRecord is one decoded line of a provider export. Shape varies per
// provider; only the field extractor should reach into it directly.
type RawRecord map[string]any
