package settings

import (
	"github.com/goliatone/go-settings/layering"
	"github.com/goliatone/go-settings/pkg/activity"
)

// ProjectReference points the compiler at an upstream project build.
type ProjectReference struct {
	Path         string `json:"path"`
	OriginalPath string `json:"originalPath,omitempty"`
	Prepend      bool   `json:"prepend,omitempty"`
	Circular     bool   `json:"circular,omitempty"`
}

// CompilerHost is the bulk snapshot of the compiler-reserved option
// universe. It is set and read as one unit, never name by name.
type CompilerHost struct {
	Files             []string
	CompilerOptions   map[string]any
	ProjectReferences []ProjectReference
}

// SetCompilerOptions bulk-sets the compiler-reserved slots in one atomic
// operation. It bypasses per-name validation; the compiler universe has its
// own rules. Fails with ErrFrozen once the store is frozen.
func (s *Store) SetCompilerOptions(files []string, compilerOptions map[string]any, projectReferences []ProjectReference) error {
	if s.Frozen() {
		return optionErr("setCompilerOptions", "", ErrFrozen)
	}

	clonedFiles := append([]string(nil), files...)
	clonedOpts := layering.CloneMap(compilerOptions)
	clonedRefs := append([]ProjectReference(nil), projectReferences...)

	s.compilerFiles = clonedFiles
	s.compilerOpts = clonedOpts
	s.compilerRefs = clonedRefs

	s.emit(activity.BuildCompilerAppliedEvent(activity.SettingsEventInput{
		Metadata: map[string]any{
			"files":              len(clonedFiles),
			"compiler_options":   len(clonedOpts),
			"project_references": len(clonedRefs),
		},
	}))
	return nil
}

// CompilerHost returns a copy of the compiler-reserved snapshot.
func (s *Store) CompilerHost() CompilerHost {
	return CompilerHost{
		Files:             append([]string(nil), s.compilerFiles...),
		CompilerOptions:   layering.CloneMap(s.compilerOpts),
		ProjectReferences: append([]ProjectReference(nil), s.compilerRefs...),
	}
}
