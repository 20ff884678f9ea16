// Package groupzip groups the files of a directory by base name and packs each
// group into its own zip archive next to the source files.
//
// A run has three steps:
//
// Scanning:
//   - ListBaseNames lists the regular files directly under a directory and
//     derives their base names with the configured BaseNameRule
//   - hidden files and files that already carry the archive extension are
//     ignored, so a second run never treats its own archives as new groups
//
// Grouping:
//   - ResolveGroup and Plan collect the members of each base name
//   - a Policy (unconditional, exact count, or required companion extension)
//     decides which groups are archived; the rest are skipped, not failed
//
// Archiving:
//   - ArchiveGroup writes a deflate zip with flat entry names into a private
//     scratch directory and renames the finished file into place
//   - the scratch directory is always removed, and the target directory never
//     sees a partially written archive
//
// Run chains the three steps, isolating failures per group, and can spread the
// groups over a bounded pool of workers. VerifyArchive and VerifyDirectory check
// archives after the fact.
//
// Every lookup is qualified by the directory passed in; nothing depends on the
// process working directory.
package groupzip
