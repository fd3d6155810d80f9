// Package blaulicht turns the presseportal "Blaulicht" listing page into a
// normalized feed of short police and fire incident reports. It fetches the
// listing, extracts one record per article fragment, optionally resolves each
// record's location to coordinates, and emits JSON or text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, nominatim/, prometheus/).
package blaulicht
