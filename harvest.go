// Package harvest collects article teasers from news and blog listing pages
// and appends normalized records to a shared spreadsheet for research
// curation.
//
// This package contains domain types, interfaces and the pure
// extraction/normalization functions, following Ben Johnson's Standard
// Package Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., rod/, goquery/, sheets/, sqlite/).
package harvest
