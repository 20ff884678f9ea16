// Package version reports the groupzip version and build metadata.
//
// Version, Commit and Date are set at build time with
//
//	-ldflags "-X github.com/dendrascience/groupzip/version.Version=v1.2.0 -X github.com/dendrascience/groupzip/version.Commit=abc123"
//
// and fall back to the module build info when unset. GetFullVersion is what the
// CLI shows for --version and what run reports record.
package version
