// Package version holds the application version, overridable at build time with
// -ldflags "-X github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version.Version=x.y.z".
package version

// Version is the application version.
var Version = "0.3.0"
