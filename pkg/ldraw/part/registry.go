package part

import (
	"slices"

	"github.com/mandelsoft/ldraw/pkg/ldraw/geometry"
	"github.com/mandelsoft/ldraw/pkg/utils"
)

// LibraryIndex answers whether an identifier denotes a standard
// part of an external, pre-indexed part library.
type LibraryIndex interface {
	IsLibraryPart(id string) bool
}

// Registry stores the containers and placed instances of one
// import. It is owned by a single import and not synchronized.
type Registry struct {
	library    LibraryIndex
	containers map[string]*Container
	order      []string
	placed     map[int]*Placed
	next       int
}

func NewRegistry(library LibraryIndex) *Registry {
	r := &Registry{library: library}
	r.Clear()
	return r
}

// Clear resets containers, placements and the id counter.
func (r *Registry) Clear() {
	r.containers = map[string]*Container{}
	r.order = nil
	r.placed = map[int]*Placed{}
	r.next = 0
}

// GetOrCreate returns the container for the name, creating an
// empty one if required. The second result reports whether the
// container has been created by this call.
func (r *Registry) GetOrCreate(name string) (*Container, bool) {
	key := Key(name)
	if c, ok := r.containers[key]; ok {
		return c, false
	}
	c := &Container{Key: key, Name: name, Type: Unknown}
	r.containers[key] = c
	r.order = append(r.order, key)
	return c, true
}

// Remove drops a container, for example one whose file could not
// be read completely.
func (r *Registry) Remove(name string) {
	key := Key(name)
	if _, ok := r.containers[key]; !ok {
		return
	}
	delete(r.containers, key)
	r.order = slices.DeleteFunc(r.order, func(k string) bool { return k == key })
}

func (r *Registry) Get(name string) *Container {
	return r.containers[Key(name)]
}

func (r *Registry) Exists(name string) bool {
	_, ok := r.containers[Key(name)]
	return ok
}

// IsKnownLibraryPart reports whether the identifier resolves against
// the standard part library.
func (r *Registry) IsKnownLibraryPart(id string) bool {
	return r.library != nil && r.library.IsLibraryPart(id)
}

// IsKnown reports whether the identifier is a library part or a
// registered container.
func (r *Registry) IsKnown(id string) bool {
	return r.IsKnownLibraryPart(id) || r.Exists(id)
}

// AllocateID returns the next global id. Ids are strictly
// increasing and never reused until Clear is called.
func (r *Registry) AllocateID() int {
	r.next++
	return r.next
}

// Place creates a placed part with a new global id.
func (r *Registry) Place(p geometry.Primitive, step int) *Placed {
	pp := &Placed{ID: r.AllocateID(), Primitive: p, Step: step}
	r.placed[pp.ID] = pp
	return pp
}

func (r *Registry) ByID(id int) *Placed {
	return r.placed[id]
}

// Containers returns all containers in registration order.
func (r *Registry) Containers() []*Container {
	return utils.TransformSlice(r.order, func(k string) *Container { return r.containers[k] })
}

func (r *Registry) Len() int {
	return len(r.order)
}

// LastID returns the most recently allocated id.
func (r *Registry) LastID() int {
	return r.next
}
