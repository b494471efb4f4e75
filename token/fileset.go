package token

import (
	"cmp"
	"fmt"
	"slices"
)

// FileSet is the registry of source buffers a batch of lexers shares:
// it hands out a disjoint [Pos] range to each [File.Size] registered
// with [FileSet.AddFile] so a Pos alone is enough to find its owning
// file and resolve a [Position] from it, without any lexer needing to
// carry a file handle around in every token it produces.
type FileSet struct {
	base  int     // base offset for the next file
	files []*File // list of files in the order added to the set
	last  *File   // cache of last file looked up
}

// NewFileSet creates a new, empty file set.
func NewFileSet() *FileSet {
	return &FileSet{
		base: 1, // 0 == NoPos
	}
}

// Base returns the minimum base offset that must be provided to
// [FileSet.AddFile] when adding the next file.
func (s *FileSet) Base() int {
	return s.base
}

// AddFile registers a source buffer of the given size under filename
// and returns the [File] handle a [lexer.Lexer] is constructed
// against. base is normally -1 (meaning "the next available base");
// an explicit base is only needed when reconstructing a FileSet from
// a serialized form, which this module has no need to do.
func (s *FileSet) AddFile(filename string, base, size int) *File {
	if base < 0 {
		base = s.base
	}

	switch {
	case base < s.base:
		panic(fmt.Sprintf("invalid base %d (should be >= %d)", base, s.base))
	case size < 0:
		panic(fmt.Sprintf("invalid size %d (should be >= 0)", size))
	}

	f := &File{
		name:  filename,
		base:  base,
		size:  size,
		lines: []int{0},
	}

	// base >= s.base && size >= 0
	base += size + 1 // +1 because EOF also has a position
	if base < 0 {
		panic("token.Pos offset overflow (> 2G of source code in file set)")
	}

	// add the file to the file set
	s.base = base
	s.files = append(s.files, f)
	s.last = f
	return f
}

// File returns the file that contains the position p.
// If no such file is found the result is nil.
func (s *FileSet) File(p Pos) *File {
	if p == NoPos {
		return nil
	}
	return s.file(p)
}

// Position converts a [Pos] p in the fileset into a Position value.
func (s *FileSet) Position(p Pos) Position {
	if p == NoPos {
		return Position{}
	}
	if f := s.file(p); f != nil {
		return f.position(p)
	}
	return Position{}
}

func (s *FileSet) file(p Pos) *File {
	// common case: successive tokens from the same lexer resolve
	// against the file they were just scanned from.
	if f := s.last; f != nil && f.Contains(p) {
		return f
	}

	// p is not in last file - binary-search the sorted file list.
	if i := searchFiles(s.files, int(p)); i >= 0 {
		f := s.files[i]
		// f.base <= int(p) by definition of searchFiles
		if f.Contains(p) {
			s.last = f
			return f
		}
	}
	return nil
}

func searchFiles(a []*File, x int) int {
	i, found := slices.BinarySearchFunc(a, x, func(a *File, x int) int {
		return cmp.Compare(a.base, x)
	})
	if !found {
		// We want the File containing x, but if we didn't
		// find x then i is the next one.
		i--
	}
	return i
}
