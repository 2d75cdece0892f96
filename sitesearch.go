// Package sitesearch provides client-side style search for a static
// documentation site. A build step turns site sources into a serialized
// search index artifact plus a title map, and a search widget loads that
// artifact, debounces keystrokes, queries the index and renders results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., bleve/, goquery/, blackfriday/).
package sitesearch
