package api

import "strconv"

// Note is the read-only record the search engine operates on. Field names
// mirror the wire format of the note store: epoch-millisecond timestamps,
// snake_case JSON keys.
type Note struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	CreatedTime   int64    `json:"created_time"`
	UpdatedTime   int64    `json:"updated_time"`
	ParentID      string   `json:"parent_id,omitempty"`
	IsTodo        bool     `json:"is_todo,omitempty"`
	TodoCompleted bool     `json:"todo_completed,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Field returns the named field's value and whether it is set.
// Optional string fields count as unset when empty; timestamps count as
// unset when zero. Unknown names report unset.
func (n Note) Field(name string) (any, bool) {
	switch name {
	case "id":
		return n.ID, n.ID != ""
	case "title":
		return n.Title, n.Title != ""
	case "body":
		return n.Body, n.Body != ""
	case "created_time":
		return n.CreatedTime, n.CreatedTime != 0
	case "updated_time":
		return n.UpdatedTime, n.UpdatedTime != 0
	case "parent_id":
		return n.ParentID, n.ParentID != ""
	case "is_todo":
		return n.IsTodo, true
	case "todo_completed":
		return n.TodoCompleted, true
	default:
		return nil, false
	}
}

// StringField returns the field's canonical string form. Numeric fields
// render base-10, booleans render "true"/"false". The bool reports whether
// the field is set, matching Field.
func (n Note) StringField(name string) (string, bool) {
	v, ok := n.Field(name)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// NumberField returns the field's numeric value. Non-numeric and unset
// fields report false.
func (n Note) NumberField(name string) (float64, bool) {
	switch name {
	case "created_time":
		return float64(n.CreatedTime), true
	case "updated_time":
		return float64(n.UpdatedTime), true
	default:
		return 0, false
	}
}
