// Package track implements the ingestion pipeline: parsing raw GPX content
// into point samples, deriving distance and ascent metrics, simplifying the
// geometry with Douglas-Peucker, assembling persisted Route entities, and
// placing direction markers along simplified lines.
package track
