package weft

// Version information for weft.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/fluxlocale/weft.Version=1.0.0"
const (
	// Name is the application name.
	Name = "weft"

	// Description is a short description of the application.
	Description = "Node-preserving AI translation for hosted site content"

	// Version is the semantic version of the application.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/fluxlocale/weft"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information, typically set via ldflags.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
