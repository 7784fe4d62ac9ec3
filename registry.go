package settings

import (
	"fmt"
	"sort"
)

// Compiler-reserved slot names. They live outside the generic per-name path
// and are populated through SetCompilerOptions only.
const (
	CompilerFiles             = "files"
	CompilerOptionsName       = "compilerOptions"
	CompilerProjectReferences = "projectReferences"
)

// RegistryOption configures a Registry on construction.
type RegistryOption func(*Registry)

// WithReporter wires the reporter the registry accumulates authoring
// mistakes into. Defaults to a CollectingReporter.
func WithReporter(reporter Reporter) RegistryOption {
	return func(r *Registry) {
		if reporter != nil {
			r.reporter = reporter
		}
	}
}

// Registry stores the set of named option declarations. Names are unique at
// any instant: a conflicting Add never replaces the existing declaration, it
// is reported to the Reporter and dropped.
type Registry struct {
	reporter Reporter
	decls    map[string]*Declaration
	stores   []*Store
}

// NewRegistry constructs an empty declaration registry. Compiler-reserved
// declarations are installed up front so their namespace is occupied from
// the start.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		reporter: NewCollectingReporter(),
		decls:    make(map[string]*Declaration),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.registerCompilerSlots()
	return r
}

func (r *Registry) registerCompilerSlots() {
	for _, decl := range []Declaration{
		{Name: CompilerFiles, Kind: KindArray, Category: CategoryCompiler},
		{Name: CompilerOptionsName, Kind: KindObject, Category: CategoryCompiler},
		{Name: CompilerProjectReferences, Kind: KindMixed, Category: CategoryCompiler},
	} {
		decl := decl
		r.decls[decl.Name] = &decl
	}
}

// Reporter exposes the reporter the registry writes to.
func (r *Registry) Reporter() Reporter {
	return r.reporter
}

// Add registers a new declaration. A duplicate name or a claim on the
// compiler-reserved namespace is a recoverable authoring mistake: it is
// reported and the call is a no-op, so one bad declaration does not abort
// startup. Defaults are accepted as declared without range or map-membership
// checks.
func (r *Registry) Add(decl Declaration) {
	if decl.Name == "" {
		r.reporter.ReportError("settings: declaration requires a name")
		return
	}
	if decl.Category == CategoryCompiler {
		r.reporter.ReportError(fmt.Sprintf("settings: add %q: %v", decl.Name, ErrReservedCategory))
		return
	}
	if existing, ok := r.decls[decl.Name]; ok {
		if existing.Category == CategoryCompiler {
			r.reporter.ReportError(fmt.Sprintf("settings: add %q: %v", decl.Name, ErrReservedCategory))
			return
		}
		r.reporter.ReportError(fmt.Sprintf("settings: add %q: %v", decl.Name, ErrDuplicateDeclaration))
		return
	}
	stored := decl
	r.decls[decl.Name] = &stored
}

// RemoveByName deletes a declaration and the corresponding value slot in
// every attached store. Removing an undeclared or reserved name is a silent
// no-op; removal is idempotent.
func (r *Registry) RemoveByName(name string) {
	decl, ok := r.decls[name]
	if !ok || decl.Category == CategoryCompiler {
		return
	}
	delete(r.decls, name)
	for _, store := range r.stores {
		store.dropSlot(name)
	}
}

// Get returns the declaration for name, or nil when absent. It never fails.
func (r *Registry) Get(name string) *Declaration {
	return r.decls[name]
}

// Has reports whether name is declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.decls[name]
	return ok
}

// All returns every ordinary declaration sorted by name. Compiler-reserved
// slots are excluded; they are not part of the generic option universe.
func (r *Registry) All() []*Declaration {
	out := make([]*Declaration, 0, len(r.decls))
	for _, decl := range r.decls {
		if decl.Category == CategoryCompiler {
			continue
		}
		out = append(out, decl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the sorted names of every ordinary declaration.
func (r *Registry) Names() []string {
	decls := r.All()
	names := make([]string, len(decls))
	for i, decl := range decls {
		names[i] = decl.Name
	}
	return names
}

func (r *Registry) attach(store *Store) {
	r.stores = append(r.stores, store)
}
