// Package lrtab reads and writes parser tables as files, and packs tables that
// are given state by state into the compact form that package parse uses.
//
// Table files come in three formats, chosen by file extension: TOML (".toml"),
// YAML (".yaml" or ".yml"), and a compact binary encoding (".lrt"). Every file
// records the version of the file format it was written with; files with a
// different major version are refused.
package lrtab

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/remora/internal/version"
	"github.com/dekarrin/remora/parse"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned when a file's format cannot be determined
	// from its extension.
	ErrUnknownFormat = errors.New("unknown table file format")

	// ErrBadMagic is returned when binary table data does not start with the
	// expected header.
	ErrBadMagic = errors.New("not a binary table file")
)

// Format is a table file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "TOML"
	case FormatYAML:
		return "YAML"
	case FormatBinary:
		return "binary"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format a file is in based on the extension of its
// path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".lrt":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("%q: %w; must end in .toml, .yaml, .yml, or .lrt", path, ErrUnknownFormat)
	}
}

// File is the contents of a table file.
type File struct {
	// Format is the version of the file format the file was written with.
	// It is set to the current format version when the File is encoded.
	Format string

	// Grammar is the name of the grammar the tables are for.
	Grammar string

	Tables parse.Tables
}

// New returns a File holding the given tables, marked with the current format
// version.
func New(grammar string, tables parse.Tables) File {
	return File{
		Format:  version.TableFormat().Core(),
		Grammar: grammar,
		Tables:  tables,
	}
}

// MarshalTOML encodes the file as a TOML document.
func (f File) MarshalTOML() ([]byte, error) {
	var buf bytes.Buffer

	if err := toml.NewEncoder(&buf).Encode(f.marshal()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalYAML gives the YAML representation of the file.
func (f File) MarshalYAML() (interface{}, error) {
	return f.marshal(), nil
}

// UnmarshalYAML decodes the file from a YAML node.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	var mf marshaledFile
	if err := node.Decode(&mf); err != nil {
		return err
	}

	f.unmarshal(mf)
	return nil
}

func (f File) marshal() marshaledFile {
	return marshaledFile{
		Format:  version.TableFormat().Core(),
		Grammar: f.Grammar,
		Tables:  marshalTables(f.Tables),
	}
}

func (f *File) unmarshal(mf marshaledFile) {
	f.Format = mf.Format
	f.Grammar = mf.Grammar
	f.Tables = mf.Tables.toTables()
}

// Encode encodes the file in the given format.
func Encode(f File, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return f.MarshalTOML()
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatBinary:
		return f.MarshalBinary()
	default:
		return nil, ErrUnknownFormat
	}
}

// Decode decodes a file from data in the given format. The format version
// of the file is checked and its tables are validated.
func Decode(data []byte, format Format) (File, error) {
	var f File

	switch format {
	case FormatTOML:
		var mf marshaledFile
		if err := toml.Unmarshal(data, &mf); err != nil {
			return File{}, fmt.Errorf("decoding TOML: %w", err)
		}
		f.unmarshal(mf)
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("decoding YAML: %w", err)
		}
	case FormatBinary:
		if err := f.UnmarshalBinary(data); err != nil {
			return File{}, fmt.Errorf("decoding binary: %w", err)
		}
	default:
		return File{}, ErrUnknownFormat
	}

	if err := version.CompatibleTableFormat(f.Format); err != nil {
		return File{}, err
	}

	if err := f.Tables.Validate(); err != nil {
		return File{}, err
	}

	return f, nil
}

// LoadFile reads the table file at path from fs. The format is chosen by the
// file's extension.
func LoadFile(fs afero.Fs, path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return File{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	f, err := Decode(data, format)
	if err != nil {
		return File{}, fmt.Errorf("%q: %w", path, err)
	}

	return f, nil
}

// SaveFile writes f to path on fs in the format chosen by the path's
// extension.
func SaveFile(fs afero.Fs, path string, f File) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	data, err := Encode(f, format)
	if err != nil {
		return fmt.Errorf("%q: encoding %s: %w", path, format, err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("%q: writing to disk: %w", path, err)
	}

	return nil
}

// Convert reads the table file at inPath and writes it back out to outPath,
// in the format of outPath's extension.
func Convert(fs afero.Fs, inPath, outPath string) error {
	f, err := LoadFile(fs, inPath)
	if err != nil {
		return err
	}

	return SaveFile(fs, outPath, f)
}
