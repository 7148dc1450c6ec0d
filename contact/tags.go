package contact

import (
	"strconv"

	"github.com/milk9111/pawbs/physics"
)

// TagLookup resolves the gameplay tag of a sensor shape.
type TagLookup interface {
	Tag(h physics.ShapeHandle) (string, bool)
}

// TagRegistry is a side-table from sensor shape to tag, owned by whichever
// component created the shapes. The physics world never sees the tags.
type TagRegistry struct {
	tags    map[physics.ShapeHandle]string
	counter map[string]int
}

// NewTagRegistry creates an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{
		tags:    make(map[physics.ShapeHandle]string),
		counter: make(map[string]int),
	}
}

// Register attaches tag to h. Empty tags and the zero handle are ignored so a
// sensor stays untagged rather than carrying a blank tag.
func (r *TagRegistry) Register(h physics.ShapeHandle, tag string) {
	if r == nil || h == 0 || tag == "" {
		return
	}
	r.tags[h] = tag
}

// Forget drops the tag of h.
func (r *TagRegistry) Forget(h physics.ShapeHandle) {
	if r == nil {
		return
	}
	delete(r.tags, h)
}

// Tag returns the tag attached to h.
func (r *TagRegistry) Tag(h physics.ShapeHandle) (string, bool) {
	if r == nil {
		return "", false
	}
	tag, ok := r.tags[h]
	return tag, ok
}

// Handle returns the shape carrying tag.
func (r *TagRegistry) Handle(tag string) (physics.ShapeHandle, bool) {
	if r == nil {
		return 0, false
	}
	for h, t := range r.tags {
		if t == tag {
			return h, true
		}
	}
	return 0, false
}

// Len returns the number of tagged shapes.
func (r *TagRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tags)
}

// Next returns the next unique tag for a family of colliders: prefix1,
// prefix2, and so on.
func (r *TagRegistry) Next(prefix string) string {
	if r == nil {
		return prefix
	}
	r.counter[prefix]++
	return prefix + strconv.Itoa(r.counter[prefix])
}

// Lookups searches several registries in order.
type Lookups []TagLookup

// Tag returns the first tag found for h.
func (l Lookups) Tag(h physics.ShapeHandle) (string, bool) {
	for _, lookup := range l {
		if lookup == nil {
			continue
		}
		if tag, ok := lookup.Tag(h); ok {
			return tag, true
		}
	}
	return "", false
}
