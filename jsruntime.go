package jsruntime

// Disposer is implemented by every caller-owned box: isolates, contexts,
// object templates and values.
type Disposer interface {
	Dispose()
}
