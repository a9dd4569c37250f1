// Package logger configures the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
)

type Options struct {
	// Level is one of debug, info, warning or error.
	Level string

	// Indent pretty-prints each entry.
	Indent bool

	// File appends entries to the given path instead of stdout. Views that
	// own the terminal or a window need this.
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the level, encoders and sink described by opts. The
// returned closer releases the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	logs.SetLevel(logs.ParseLevel(level))

	logs.Encoder = json.Marshal
	if opts.Indent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if opts.File == "" {
		logs.SetLogger(writer(os.Stdout))
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.New("opening log file failed").
			WithTag("path", opts.File).
			Wrap(err)
	}
	logs.SetLogger(writer(f))
	return f, nil
}

// writer returns a logger that prints entries to w, one per line.
func writer(w io.Writer) func(logs.Entry) {
	var mu sync.Mutex
	return func(e logs.Entry) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, e)
	}
}
