// Package markdown renders Markdown bodies to HTML with goldmark and loads
// page documents described by YAML frontmatter from a filesystem.
package markdown
