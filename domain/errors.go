package domain

import "fmt"

// RenderError reports that a page could not be rendered or yielded no usable
// links. It aborts a scrape run entirely.
type RenderError struct {
	URL string
	Err error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("rendering %s failed", e.URL)
	}
	return fmt.Sprintf("rendering %s failed: %v", e.URL, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// EmbedError reports a failed remote embedding call for a single text.
type EmbedError struct {
	Text string
	Err  error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embedding %q failed: %v", e.Text, e.Err)
}

func (e *EmbedError) Unwrap() error { return e.Err }

// StoreError reports a failed document store operation. Key is the document
// key involved, empty for search.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s for %s failed: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports invalid user input, caught before any network call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
