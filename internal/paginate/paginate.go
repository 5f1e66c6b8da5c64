// Package paginate splits ordered listings into fixed-size pages addressed by
// the "<base>/page/<n>" convention.
package paginate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPageSize is returned for page sizes below 1.
var ErrInvalidPageSize = errors.New("page size must be at least 1")

// Page is one physical listing page.
type Page[T any] struct {
	Number   int // 1-based
	Total    int // number of pages in the run
	Items    []T
	HasPrev  bool
	HasNext  bool
	Path     string
	PrevPath string
	NextPath string
}

// PagePath addresses page n of a listing rooted at basePath. Page 1 lives at
// the base path itself; page n>1 at "<basePath>/page/<n>".
func PagePath(basePath string, n int) string {
	if n <= 1 {
		return basePath
	}
	return strings.TrimSuffix(basePath, "/") + "/page/" + strconv.Itoa(n)
}

// Paginate splits items into ceil(len(items)/size) pages. An empty input
// still yields a single empty page so the listing path always resolves.
func Paginate[T any](items []T, size int, basePath string) ([]Page[T], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}

	total := (len(items) + size - 1) / size
	if total == 0 {
		total = 1
	}

	pages := make([]Page[T], 0, total)
	for i := 0; i < total; i++ {
		start := i * size
		end := min(start+size, len(items))
		number := i + 1
		p := Page[T]{
			Number:  number,
			Total:   total,
			Items:   items[start:end:end],
			HasPrev: number > 1,
			HasNext: number < total,
			Path:    PagePath(basePath, number),
		}
		if p.HasPrev {
			p.PrevPath = PagePath(basePath, number-1)
		}
		if p.HasNext {
			p.NextPath = PagePath(basePath, number+1)
		}
		pages = append(pages, p)
	}
	return pages, nil
}
