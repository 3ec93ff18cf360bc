// Package version holds the build version, overridable with
// -ldflags "-X github.com/Rahul-Chotaliya/tradehub/internal/version.Version=v1.2.3".
package version

// Version is the application version.
var Version = "dev"
