package usages

// Registry is an immutable, ordered view of the pages in a table, keyed by
// page id. It is built once per run and handed to consumers by reference;
// there is no package-level instance.
type Registry struct {
	order []uint16
	pages map[uint16]*UsagePage
}

// NewRegistry builds a registry from a table. Page order follows the table;
// on duplicate ids the first occurrence wins.
func NewRegistry(t UsageTables) *Registry {
	r := &Registry{pages: make(map[uint16]*UsagePage, len(t.Pages))}
	for i := range t.Pages {
		p := &t.Pages[i]
		if _, ok := r.pages[p.ID]; ok {
			continue
		}
		r.order = append(r.order, p.ID)
		r.pages[p.ID] = p
	}
	return r
}

// Page returns the page registered under id, if any.
func (r *Registry) Page(id uint16) (*UsagePage, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// Pages returns the registered pages in table order.
func (r *Registry) Pages() []*UsagePage {
	out := make([]*UsagePage, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pages[id])
	}
	return out
}

// Len returns the number of registered pages.
func (r *Registry) Len() int { return len(r.order) }
