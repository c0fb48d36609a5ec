package dom

// Retainer is implemented by targets whose lifetime is managed outside the
// Go heap, for example objects mirrored into a script runtime. A rooted
// Retainer is retained when rooted and released when unrooted.
type Retainer interface {
	Retain()
	Release()
}

// Root is a strong hold on a target, valid until it is unrooted.
type Root struct {
	target     EventTarget
	collection *RootCollection
	index      int
}

func (r *Root) Target() EventTarget { return r.target }

// RootCollection keeps targets alive for the duration of a scope. Roots
// must be released in the reverse order they were acquired.
type RootCollection struct {
	roots []*Root
}

func NewRootCollection() *RootCollection {
	return &RootCollection{}
}

func (c *RootCollection) Root(t EventTarget) *Root {
	r := &Root{target: t, collection: c, index: len(c.roots)}
	c.roots = append(c.roots, r)
	if ret, ok := t.(Retainer); ok {
		ret.Retain()
	}
	return r
}

// Unroot releases r, which must be the most recently acquired live root.
func (c *RootCollection) Unroot(r *Root) {
	invariant(r.collection == c, "root does not belong to this collection")
	invariant(len(c.roots) > 0 && c.roots[len(c.roots)-1] == r,
		"root %d released out of order (%d live)", r.index, len(c.roots))

	c.roots[len(c.roots)-1] = nil
	c.roots = c.roots[:len(c.roots)-1]
	if ret, ok := r.target.(Retainer); ok {
		ret.Release()
	}
	r.target = nil
}

// Release unroots everything still held, newest first.
func (c *RootCollection) Release() {
	for len(c.roots) > 0 {
		c.Unroot(c.roots[len(c.roots)-1])
	}
}

func (c *RootCollection) Len() int { return len(c.roots) }
