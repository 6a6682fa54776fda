package clipper

import "github.com/atotto/clipboard"

type Writer interface {
	Write(text string) error
}

type clipboardWriter struct{}

func (c clipboardWriter) Write(text string) error {
	return clipboard.WriteAll(text)
}

// New returns a Writer backed by the system clipboard.
func New() Writer {
	return clipboardWriter{}
}

type Mock struct {
	WriteFunc func(text string) error
}

func (m *Mock) Write(text string) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(text)
	}
	return nil
}

func NewMock() *Mock {
	return &Mock{}
}
