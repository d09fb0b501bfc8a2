// Package dataio loads and saves data files by their suffix. Codecs are
// registered per suffix; saves go through a temp file and an atomic rename
// so readers never observe a half-written file.
package dataio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// ErrUnknownSuffix marks a path whose suffix has no registered codec.
var ErrUnknownSuffix = errors.New("no codec registered for suffix")

// Codec translates between bytes and in-memory values for one file format.
type Codec interface {
	Decode(r io.Reader) (any, error)
	Encode(w io.Writer, v any) error
}

var (
	mu     sync.RWMutex
	codecs = map[string]Codec{
		".json": jsonCodec{},
		".csv":  csvCodec{},
		".txt":  textCodec{},
	}
)

// Register installs a codec for a suffix (leading dot included), replacing
// any previous registration.
func Register(suffix string, c Codec) {
	mu.Lock()
	defer mu.Unlock()
	codecs[suffix] = c
}

// lookup finds the codec for a path by its full multi-part suffix first
// (".tar.gz"), then by the last extension.
func lookup(path string) (Codec, error) {
	base := filepath.Base(path)
	mu.RLock()
	defer mu.RUnlock()
	if dot := strings.Index(base, "."); dot > 0 {
		if c, ok := codecs[base[dot:]]; ok {
			return c, nil
		}
	}
	if c, ok := codecs[filepath.Ext(base)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSuffix, filepath.Ext(base))
}

// Load reads and decodes the file at path.
func Load(path string) (any, error) {
	c, err := lookup(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	v, err := c.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// Save encodes v and writes it to path atomically, creating parent
// directories as needed.
func Save(path string, v any) error {
	c, err := lookup(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf, v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}

type jsonCodec struct{}

func (jsonCodec) Decode(r io.Reader) (any, error) {
	var v any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (jsonCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type csvCodec struct{}

func (csvCodec) Decode(r io.Reader) (any, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (csvCodec) Encode(w io.Writer, v any) error {
	records, ok := v.([][]string)
	if !ok {
		return fmt.Errorf("csv codec expects [][]string, got %T", v)
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

type textCodec struct{}

func (textCodec) Decode(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (textCodec) Encode(w io.Writer, v any) error {
	switch t := v.(type) {
	case string:
		_, err := io.WriteString(w, t)
		return err
	case []byte:
		_, err := w.Write(t)
		return err
	default:
		return fmt.Errorf("text codec expects string or []byte, got %T", v)
	}
}
