package validate

import (
	"fmt"

	"github.com/goliatone/go-formschema/internal/yamltree"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func (v *validator) dataTable(r *reader, path string) *schema.DataTable {
	out := &schema.DataTable{
		Columns:    v.columns(r.take("columns"), joinPath(path, "columns")),
		Data:       v.rows(r.take("data"), joinPath(path, "data")),
		Selection:  v.selection(r.take("selection"), joinPath(path, "selection")),
		Pagination: v.pagination(r.take("pagination"), joinPath(path, "pagination")),
		Filters:    v.filters(r.take("filters"), joinPath(path, "filters")),
		RowActions: v.actions(r.take("row_actions"), joinPath(path, "row_actions")),
		EmptyState: v.emptyState(r.take("empty_state"), joinPath(path, "empty_state")),
	}
	return out
}

func (v *validator) columns(node *yamltree.Node, path string) []schema.Column {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of columns", path), path, node)
		return nil
	}
	out := make([]schema.Column, 0, len(node.Items))
	seen := make(map[string]string, len(node.Items))
	for idx, item := range node.Items {
		itemPath := indexPath(path, idx)
		if !item.IsMapping() {
			v.add(schema.ErrInvalidType, fmt.Sprintf("column at %s must be a mapping", itemPath), itemPath, item)
			continue
		}
		col := schema.Column{
			ID:       v.str(item.Get("id"), joinPath(itemPath, "id")),
			Label:    v.str(item.Get("label"), joinPath(itemPath, "label")),
			Sortable: v.boolean(item.Get("sortable"), joinPath(itemPath, "sortable"), false),
			Format:   v.str(item.Get("format"), joinPath(itemPath, "format")),
		}
		if col.ID == "" {
			v.add(schema.ErrMissingRequiredField, fmt.Sprintf(`column at %s is missing required "id"`, itemPath), itemPath, item)
		} else if first, dup := seen[col.ID]; dup {
			v.add(schema.ErrDuplicateFieldID, fmt.Sprintf("column id %q at %s duplicates %s", col.ID, itemPath, first), itemPath, item)
		} else {
			seen[col.ID] = itemPath
		}
		if col.Label == "" {
			col.Label = col.ID
		}
		out = append(out, col)
	}
	return out
}

func (v *validator) rows(node *yamltree.Node, path string) []map[string]any {
	if node.IsNull() {
		return nil
	}
	if !node.IsSequence() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a list of rows", path), path, node)
		return nil
	}
	out := make([]map[string]any, 0, len(node.Items))
	for idx, item := range node.Items {
		if !item.IsMapping() {
			itemPath := indexPath(path, idx)
			v.add(schema.ErrInvalidType, fmt.Sprintf("row at %s must be a mapping", itemPath), itemPath, item)
			continue
		}
		row, _ := item.Interface().(map[string]any)
		out = append(out, row)
	}
	return out
}

func (v *validator) selection(node *yamltree.Node, path string) schema.SelectionMode {
	if node.IsNull() {
		return ""
	}
	if node.IsScalar() {
		if enabled, ok := node.Value.(bool); ok {
			if enabled {
				return schema.SelectionMultiple
			}
			return schema.SelectionNone
		}
	}
	mode := schema.SelectionMode(v.str(node, path))
	switch mode {
	case "", schema.SelectionNone, schema.SelectionSingle, schema.SelectionMultiple:
		return mode
	default:
		v.add(schema.ErrInvalidValue, fmt.Sprintf("%s must be one of none, single or multiple, got %q", path, mode), path, node)
		return ""
	}
}

func (v *validator) pagination(node *yamltree.Node, path string) *schema.Pagination {
	switch {
	case node.IsNull():
		return nil
	case node.IsScalar():
		return &schema.Pagination{Enabled: v.boolean(node, path, false)}
	case !node.IsMapping():
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a mapping", path), path, node)
		return nil
	}
	out := &schema.Pagination{Enabled: v.boolean(node.Get("enabled"), joinPath(path, "enabled"), true)}
	if size, ok := v.integer(node.Get("page_size"), joinPath(path, "page_size")); ok {
		if size < 1 {
			v.add(schema.ErrInvalidValue, fmt.Sprintf("%s.page_size must be at least 1", path), joinPath(path, "page_size"), node.Get("page_size"))
		}
		out.PageSize = size
	}
	return out
}

func (v *validator) filters(node *yamltree.Node, path string) *schema.Filters {
	if node.IsNull() {
		return nil
	}
	if !node.IsMapping() {
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a mapping or a list of filter names", path), path, node)
		return nil
	}
	return &schema.Filters{
		ShowSearch: v.boolean(node.Get("show_search"), joinPath(path, "show_search"), false),
		Fields:     v.fields(node.Get("fields"), joinPath(path, "fields")),
	}
}

func (v *validator) emptyState(node *yamltree.Node, path string) *schema.EmptyState {
	switch {
	case node.IsNull():
		return nil
	case node.IsScalar():
		return &schema.EmptyState{Message: text(node)}
	case !node.IsMapping():
		v.add(schema.ErrInvalidType, fmt.Sprintf("%s must be a mapping or a message", path), path, node)
		return nil
	}
	return &schema.EmptyState{
		Message: v.str(node.Get("message"), joinPath(path, "message")),
		Icon:    v.icon(v.str(node.Get("icon"), joinPath(path, "icon"))),
	}
}
