// Package scraper provides HTTP fetching and HTML parsing for the daily
// assignments page.
//
// The page is only loosely structured: personnel groups are flat runs of
// sibling elements delimited by group-title markers rather than nested
// containers, every labeled sub-element is optional, and procedure rows pack
// CPT codes, anesthesia type, and surgeon into free-text description cells.
// The parser tolerates all of that by omitting whatever a selector fails to
// find; it degrades rather than errors.
package scraper
