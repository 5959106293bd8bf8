package version

// Version is the release version, set at build time via ldflags.
// Example: go build -ldflags "-X github.com/shishobooks/removecrud/pkg/version.Version=1.0.0".
var Version = "dev"
