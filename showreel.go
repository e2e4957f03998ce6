// Package showreel provides an adaptive extraction engine for
// creative-industry catalog pages. It turns heterogeneous, frequently
// redesigned HTML into structured records (titles, credited companies,
// people, roles, media links) without per-site scrapers: a structure
// classifier infers the layout variant, a cascade of extraction strategies
// is tried in priority order, a validator drives a single inference-assisted
// repair step, and every attempt is recorded in an append-only ledger.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., goquery/, gemini/,
// sqlite/, mission/).
package showreel
