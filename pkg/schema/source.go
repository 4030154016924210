package schema

import "path/filepath"

// Source identifies where a payload document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the places a payload can be read from.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying an entry inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type bytesSource struct {
	label string
}

func (s bytesSource) Location() string { return s.label }

func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

// SourceFromBytes labels an in-memory payload, e.g. stdin.
func SourceFromBytes(label string) Source {
	if label == "" {
		label = "inline"
	}
	return bytesSource{label: label}
}
