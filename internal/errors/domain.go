package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed compile-time validation failures below.
var (
	// ErrDuplicateSlug indicates two content items in one collection share a slug.
	ErrDuplicateSlug = stdErrors.New("duplicate slug")

	// ErrOrphanCategory indicates sibling category names that differ only in
	// casing or spacing and cannot be merged unambiguously.
	ErrOrphanCategory = stdErrors.New("ambiguous category name")

	// ErrPathCollision indicates two generated routes computed the same path.
	ErrPathCollision = stdErrors.New("path collision detected")
)

// DuplicateSlugError reports the collection, the slug and the two sources
// that claimed it.
type DuplicateSlugError struct {
	Collection string
	Slug       string
	First      string
	Second     string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("%s: slug %q in collection %q claimed by %q and %q",
		ErrDuplicateSlug, e.Slug, e.Collection, e.First, e.Second)
}

func (e *DuplicateSlugError) Is(target error) bool { return target == ErrDuplicateSlug }

// OrphanCategoryError reports a category name under Parent that conflicts
// with an already registered sibling.
type OrphanCategoryError struct {
	Parent   []string
	Name     string
	Existing string
}

func (e *OrphanCategoryError) Error() string {
	parent := "/"
	if len(e.Parent) > 0 {
		parent = strings.Join(e.Parent, "/")
	}
	return fmt.Sprintf("%s: %q conflicts with existing category %q under %q",
		ErrOrphanCategory, e.Name, e.Existing, parent)
}

func (e *OrphanCategoryError) Is(target error) bool { return target == ErrOrphanCategory }

// PathCollisionError reports a route path generated twice together with a
// description of both owners.
type PathCollisionError struct {
	Path     string
	Existing string
	Incoming string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("%s: %q generated by %s and %s", ErrPathCollision, e.Path, e.Existing, e.Incoming)
}

func (e *PathCollisionError) Is(target error) bool { return target == ErrPathCollision }
