// Package logtail reads the paintbox log file back for display.
//
// # Overview
//
// paintbox writes JSON lines through zap (see the logging package). The
// `paintbox log` command uses this package to show the tail of that file in
// a readable form:
//
//	{"level":"info","ts":"2024-05-02T09:00:00.000+0000","msg":"import applied","strategy":"merge"}
//
// becomes
//
//	2024-05-02 09:00:00 INFO  import applied  strategy=merge
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so it scans the file once and
// keeps O(maxLines) lines in memory regardless of file size:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines:
//	   - Return first 'count' entries from buffer
//	4. If total >= maxLines:
//	   - Return buffer starting from current index (oldest line)
//
// A non-positive maxLines returns the whole file.
//
// # Formatting
//
// Parse decodes one line into an Entry. Lines that are not zap records
// (a panic trace, a stray print) are kept verbatim. Format renders plain
// text; Colorize does the same with lipgloss colors per level:
//
//   - DEBUG: cyan
//   - INFO: green
//   - WARN: yellow
//   - ERROR: red
//
// Extra fields are printed as key=value pairs sorted by key. The caller and
// stacktrace fields are dropped.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Other errors (permission
// denied, I/O errors) are returned wrapped. Formatting never fails.
package logtail
