package entity

// Breadcrumb is one step of a page's navigation trail.
// An empty Path marks the current (non-clickable) page.
type Breadcrumb struct {
	Title string `yaml:"title" json:"title"`
	Path  string `yaml:"path" json:"path"`
}

// Trail is an ordered breadcrumb list, root first.
type Trail []Breadcrumb

// Clone returns a copy that can be modified without touching t.
func (t Trail) Clone() Trail {
	if t == nil {
		return nil
	}
	out := make(Trail, len(t))
	copy(out, t)
	return out
}

// WithTitle returns a copy of t whose last item carries title.
// An empty title or trail returns an unchanged copy.
func (t Trail) WithTitle(title string) Trail {
	out := t.Clone()
	if title == "" || len(out) == 0 {
		return out
	}
	out[len(out)-1].Title = title
	return out
}
