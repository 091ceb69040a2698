// Package fieldtypes registers the field types the schema validator knows
// about. Unregistered types are never rejected; the registry only decides
// which types carry extra constraints, such as requiring an options list.
// Callers extend it with their own widget types via Register and hand the
// result to parser.WithFieldTypes.
package fieldtypes
