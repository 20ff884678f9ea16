// Package cmd provides the command-line interface implementation for groupzip.
//
// This package contains all the subcommand implementations for the groupzip CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, global flags and command groups
//   - zip: Archive every selected group of a directory
//   - scan: Dry run showing groups and the policy decision for each
//   - serve: Web form front end
//   - validate: Archive validation
//   - seed: Generate sidecar-style test groups
//   - config: Write or print the configuration
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Settings are resolved through the config package,
// so a flag, a GROUPZIP_* variable or the configuration file can set each option.
package cmd
