// Package arena provides a grow-only scratch buffer with watermark resets, used for
// per-call temporary storage in the collision code so repeated calls reuse the same
// backing memory instead of allocating every frame.
package arena

// Mark is a high-water mark recorded by Arena.Mark.
type Mark int

// Arena hands out slices carved from one backing buffer. Slices handed out after a
// Mark are invalidated by Reset to that mark.
type Arena[T any] struct {
	buf    []T
	used   int
	frozen []Mark
}

// New creates an arena with room for capacity elements before it must grow.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{buf: make([]T, capacity)}
}

// Alloc returns n zeroed elements. If the backing buffer is too small it is replaced
// by a larger one; slices handed out earlier keep pointing at the old buffer.
func (a *Arena[T]) Alloc(n int) []T {
	if n < 0 {
		panic("arena: negative allocation")
	}
	if a.used+n > len(a.buf) {
		grown := make([]T, max(2*len(a.buf), a.used+n))
		copy(grown, a.buf[:a.used])
		a.buf = grown
	}
	s := a.buf[a.used : a.used+n : a.used+n]
	clear(s)
	a.used += n
	return s
}

// Mark records the current high-water mark.
func (a *Arena[T]) Mark() Mark {
	return Mark(a.used)
}

// Reset rolls the arena back to m.
func (a *Arena[T]) Reset(m Mark) {
	if int(m) < 0 || int(m) > a.used {
		panic("arena: reset past high-water mark")
	}
	a.used = int(m)
}

// Freeze pushes the current mark; the matching Unfreeze releases everything
// allocated in between.
func (a *Arena[T]) Freeze() {
	a.frozen = append(a.frozen, a.Mark())
}

// Unfreeze restores the mark pushed by the last Freeze.
func (a *Arena[T]) Unfreeze() {
	if len(a.frozen) == 0 {
		panic("arena: unfreeze without freeze")
	}
	m := a.frozen[len(a.frozen)-1]
	a.frozen = a.frozen[:len(a.frozen)-1]
	a.Reset(m)
}

// Used returns the number of live elements.
func (a *Arena[T]) Used() int {
	return a.used
}

// Cap returns the size of the backing buffer.
func (a *Arena[T]) Cap() int {
	return len(a.buf)
}
