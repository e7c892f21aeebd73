// Package paginate splits an ordered sequence into fixed-size listing pages.
package paginate

import "fmt"

// HomeSize is the number of posts shown on a home page.
const HomeSize = 3

// Page is one listing page. Number is 1-based; NumPages is the total page
// count for the sequence, which is 0 for the empty placeholder page.
type Page[T any] struct {
	Number   int
	Items    []T
	NumPages int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// Prev returns the previous page number.
func (p Page[T]) Prev() int { return p.Number - 1 }

// Next returns the next page number.
func (p Page[T]) Next() int { return p.Number + 1 }

// Count returns ceil(n/size).
func Count(n, size int) int {
	if size <= 0 {
		panic(fmt.Sprintf("paginate: page size %d must be positive", size))
	}
	return (n + size - 1) / size
}

// Paginate partitions items into pages of at most size items. The caller is
// responsible for ordering. An empty input still yields a single empty page
// numbered 1 with NumPages 0, so the first listing always exists.
func Paginate[T any](items []T, size int) []Page[T] {
	n := Count(len(items), size)
	if n == 0 {
		return []Page[T]{{Number: 1, Items: []T{}, NumPages: 0}}
	}
	pages := make([]Page[T], 0, n)
	for p := 1; p <= n; p++ {
		start := (p - 1) * size
		end := min(start+size, len(items))
		pages = append(pages, Page[T]{
			Number:   p,
			Items:    items[start:end:end],
			NumPages: n,
		})
	}
	return pages
}

// Head returns the first n items, or all of them when there are fewer.
func Head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) < n {
		n = len(items)
	}
	return items[:n:n]
}
