// Package types defines the Route and Folder entities, the GeoJSON line
// document types, the shared remote state document schema, the configuration
// record, and the standard error taxonomy for the rutas system.
package types
