package writers

import (
	"io"
	"io/fs"
	"os"
)

// Delays initialization until the writer is written to
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
	err    error
}

// Creates a new `LazyWriteCloser`. An initialization function is passed and is
// called once when the `LazyWriteCloser` is first written to. A failed
// initialization is remembered and returned by every later write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

// Creates a `LazyWriteCloser` for a file. The file is created or truncated on
// the first write only, so a conversion that fails before writing leaves an
// existing file untouched.
func NewLazyFile(path string, perms fs.FileMode) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perms)
	})
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		if f.err != nil {
			return 0, f.err
		}
		f.writer, f.err = f.init()
		if f.err != nil {
			f.writer = nil
			return 0, f.err
		}
	}

	return f.writer.Write(p)
}

// Opened reports whether the underlying writer has been initialized.
func (f *LazyWriteCloser) Opened() bool {
	return f.writer != nil
}

func (f *LazyWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}

// Wraps a writer that must not be closed, such as stdout.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
