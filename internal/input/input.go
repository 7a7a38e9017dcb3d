// Package input assembles the byte sequence that the geomean command works on.
package input

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"golang.org/x/exp/mmap"
)

// Load concatenates its arguments in order. An argument that names a file
// contributes the file's contents; an argument that cannot name an existing
// file contributes its own bytes, as a literal string.
//
// Files are memory-mapped for reading and unmapped before Load returns; the
// result never aliases a mapping.
func Load(args []string) (s []byte, err error) {
	for _, arg := range args {
		if s, err = appendArg(s, arg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func appendArg(s []byte, arg string) (result []byte, err error) {
	r, err := mmap.Open(arg)
	if err != nil {
		if isLiteral(err) {
			return append(s, arg...), nil
		}
		return nil, fmt.Errorf("input %q: %w", arg, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			result, err = nil, fmt.Errorf("input %q: %w", arg, cerr)
		}
	}()
	n := len(s)
	s = append(s, make([]byte, r.Len())...)
	if _, err = r.ReadAt(s[n:], 0); err != nil {
		return nil, fmt.Errorf("input %q: %w", arg, err)
	}
	return s, nil
}

func isLiteral(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENAMETOOLONG)
}
