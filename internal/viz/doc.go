// Package viz turns the draw events of a growing tree into terminal output.
//
//   - [Canvas]: cell grid with wide glyph alignment and overlay compositing
//   - [Theme]: color classes to lipgloss styles, including the seasonal palette
//   - [BaseLines], [MessageBox]: pot art and the framed message
//   - [Print]: the finished tree as ANSI text
package viz
