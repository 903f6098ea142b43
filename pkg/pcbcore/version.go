// Package pcbcore holds module-wide identifiers.
package pcbcore

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/pcbcore"
