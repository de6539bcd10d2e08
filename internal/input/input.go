package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned (wrapped in an IOError) for content that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("stream did not contain valid UTF-8")

// IOError reports a failure to acquire input text.
type IOError struct {
	Op   string // "open", "read", "decompress" or "decode"
	Path string // empty for standard input
	Err  error
}

func (e *IOError) Error() string {
	source := e.Path
	if source == "" {
		source = "standard input"
	}

	return fmt.Sprintf("%s %s: %v", e.Op, source, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Source is the fully materialized input text and the name it is displayed under.
type Source struct {
	Content string
	Name    string
}

// Options tune acquisition.
type Options struct {
	// Decompress decodes gzip and zstd payloads, detected by magic bytes.
	Decompress bool
	Logger     *slog.Logger
}

// Acquire reads the whole of path, or of stdin when path is empty.
func Acquire(path string, stdin io.Reader, opts Options) (Source, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log = log.With("component", "input")

	var (
		data []byte
		name string
		err  error
	)

	if path == "" {
		log.Debug("Reading standard input")

		data, err = readStdin(stdin)
	} else {
		log.Debug("Reading file", "path", path)

		data, err = readFile(path)
		name = filepath.Base(path)
	}

	if err != nil {
		return Source{}, err
	}

	if opts.Decompress {
		decoded, codec, derr := decompress(data)
		if derr != nil {
			return Source{}, &IOError{Op: "decompress", Path: path, Err: derr}
		}

		if codec != "" {
			log.Debug("Decompressed input", "codec", codec, "compressed_bytes", len(data), "bytes", len(decoded))
		}

		data = decoded
	}

	if !utf8.Valid(data) {
		return Source{}, &IOError{Op: "decode", Path: path, Err: ErrInvalidEncoding}
	}

	log.Debug("Input acquired", "bytes", len(data), "name", name)

	return Source{Content: string(data), Name: name}, nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: unwrapPathError(err)}
	}
	defer file.Close()

	var buf bytes.Buffer

	_, err = buf.ReadFrom(file)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}

	return buf.Bytes(), nil
}

func readStdin(stdin io.Reader) ([]byte, error) {
	if stdin == nil {
		return nil, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}

	return data, nil
}

// unwrapPathError drops the *fs.PathError layer; IOError already carries the path.
func unwrapPathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}

	return err
}
