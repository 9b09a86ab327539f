package book

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/seekerror/logw"
)

// recordSize is the on-disk width of one Polyglot entry: 8-byte key,
// 2-byte move, 2-byte weight, 4-byte learn counter, all big-endian.
const recordSize = 16

// Load reads a Polyglot .bin file from path into a Book. The file is
// expected to already be sorted by key (the documented format guarantee);
// New re-sorts defensively if it is not.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book %q: %w", path, err)
	}
	defer f.Close()

	return loadReader(f)
}

func loadReader(r io.Reader) (*Book, error) {
	var entries []Entry
	var raw [recordSize]byte

	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read book record: %w", err)
		}
		entries = append(entries, Entry{
			Key:    binary.BigEndian.Uint64(raw[0:8]),
			Move:   binary.BigEndian.Uint16(raw[8:10]),
			Weight: binary.BigEndian.Uint16(raw[10:12]),
			Learn:  binary.BigEndian.Uint32(raw[12:16]),
		})
	}
	return New(entries), nil
}

// DefaultCandidates lists the paths tried, in order, when no BookFile option
// has been set or the configured one cannot be opened: the user-specified
// path (first, via LoadFromCandidates's caller prepending it), then a few
// conventional locations relative to the working directory.
func DefaultCandidates() []string {
	return []string{
		"book.bin",
		"performance.bin",
		"src/performance.bin",
	}
}

// LoadFromCandidates tries each path in order and returns the first Book
// that loads successfully, along with the path it came from. If none load,
// it returns an empty (always-missing) Book and logs each attempt's
// failure at debug level rather than failing the caller outright — a
// missing opening book is not a fatal condition.
func LoadFromCandidates(ctx context.Context, paths []string) (*Book, string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		b, err := Load(p)
		if err != nil {
			logw.Debugf(ctx, "Opening book not loaded from %q: %v", p, err)
			continue
		}
		logw.Infof(ctx, "Opening book loaded from %q: %v entries", p, b.Len())
		return b, p
	}
	logw.Debugf(ctx, "Opening book file not found, tried: %v", paths)
	return New(nil), ""
}
