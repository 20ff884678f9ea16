// Package main provides the groupzip command-line interface.
//
// groupzip packs the files of a directory that share a base name into one zip
// archive per group, written next to the source files. Archives are assembled
// in scratch space and moved into place only when complete, so a directory never
// holds a partial archive under its final name.
//
// The main binary supports multiple subcommands:
//   - zip: Archive every selected group of a directory
//   - scan: Show the groups of a directory and which would be archived
//   - serve: Run the web form front end
//   - validate: Validate archives for corruption and drift from their sources
//   - seed: Generate sidecar-style file groups for testing
//   - config: Write a default configuration file or print the effective one
package main
