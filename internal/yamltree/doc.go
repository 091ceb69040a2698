// Package yamltree decodes YAML source into an order-preserving generic tree
// with 0-indexed source positions. It applies no schema knowledge: mappings,
// sequences and scalars come back exactly as authored, with aliases expanded
// and merge keys resolved, so later passes can normalise and validate the
// document while still pointing errors at the original line and column.
package yamltree
