// Package grep searches the regular files of a directory for lines containing a literal string.
//
// The search is a five stage pipeline, each stage running in its own goroutine and connected to the
// next one by a bounded queue:
//
//	enumerate -> filter metadata -> expand lines -> match -> output
//
// enumerate lists the regular files, filter metadata drops files by size, owner and group, expand
// lines turns every text file into its lines, match keeps the lines containing the pattern and
// output writes them and counts them.
package grep
