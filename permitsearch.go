// Package permitsearch looks up county permit offices by state and zipcode
// and builds property search links for third-party listing sites.
//
// This package contains domain types, interfaces and the pure lookup logic,
// following Ben Johnson's Standard Package Layout. Implementations that carry
// a dependency live in subdirectories named after it (e.g., sqlite/, http/).
package permitsearch
