package admin

// ModalView is what the delete confirmation shows about its target.
type ModalView struct {
	Title   string
	Summary []string
	Loading bool
}

// DeleteModal asks for confirmation before a destructive action.
// States: hidden -> shown -> (confirmed | cancelled) -> hidden.
type DeleteModal[T any] struct {
	target  *T
	loading bool
}

// Show opens the modal for target. A nil target keeps it hidden.
func (m *DeleteModal[T]) Show(target *T) {
	if target == nil {
		return
	}
	m.target = target
}

func (m *DeleteModal[T]) Visible() bool { return m.target != nil }

func (m *DeleteModal[T]) Loading() bool { return m.loading }

func (m *DeleteModal[T]) Target() *T { return m.target }

// View renders nothing (nil) without a target.
func (m *DeleteModal[T]) View(title string, summarize func(T) []string) *ModalView {
	if m.target == nil {
		return nil
	}
	return &ModalView{Title: title, Summary: summarize(*m.target), Loading: m.loading}
}

// Confirm runs fn with the modal disabled until it returns. On success the
// modal hides; on failure it stays shown and the error is returned.
func (m *DeleteModal[T]) Confirm(fn func(T) error) error {
	if m.target == nil || m.loading {
		return nil
	}
	m.loading = true
	err := fn(*m.target)
	m.loading = false
	if err != nil {
		return err
	}
	m.target = nil
	return nil
}

func (m *DeleteModal[T]) Cancel() {
	if m.loading {
		return
	}
	m.target = nil
}
