// Package provider implements translation backends for weft.
package provider

import "github.com/fluxlocale/weft"

// AIProvider is the interface for AI translation backends.
// This is an alias to the main package interface for convenience.
type AIProvider = weft.AIProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = weft.TranslateRequest
