package maze

// Renderer receives construction and solving events as they happen.
// Implementations are strictly observers: they must not mutate the maze,
// and the algorithms behave identically under a no-op implementation.
// A non-nil error from either callback aborts the operation that raised it
// and is returned to the caller unmodified.
type Renderer interface {
	// WallBroken is called after the wall between two adjacent cells has
	// been removed during generation.
	WallBroken(a, b CellPosition) error

	// Moved is called when the solver advances from one cell to an adjacent
	// one. A true backtrack undoes the forward move previously reported for
	// the same pair.
	Moved(from, to CellPosition, backtrack bool) error
}

// NopRenderer discards every event. It is the default renderer, keeping
// generation and solving fully headless.
type NopRenderer struct{}

func (NopRenderer) WallBroken(_, _ CellPosition) error { return nil }

func (NopRenderer) Moved(_, _ CellPosition, _ bool) error { return nil }
