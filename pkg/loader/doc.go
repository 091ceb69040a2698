// Package loader is the file-loading collaborator of the parser: it reads
// YAML form documents from disk or an fs.FS and records each parse result.
// The parser itself never touches the filesystem.
package loader
