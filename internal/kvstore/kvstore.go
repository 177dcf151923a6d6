package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// File is a key-value store backed by a single TOML file. Values are
// stored as opaque strings under a [secrets] table. Writes rewrite the
// whole file; there is no atomicity guarantee beyond what the
// filesystem provides, and concurrent writers are last-writer-wins.
type File struct {
	Path string
}

// New returns a store backed by the TOML file at path. The file is
// created on first write.
func New(path string) *File {
	return &File{Path: path}
}

type fileContents struct {
	Secrets map[string]string `toml:"secrets"`
}

func (f *File) load() (*fileContents, error) {
	contents := &fileContents{Secrets: make(map[string]string)}

	if _, err := os.Stat(f.Path); os.IsNotExist(err) {
		return contents, nil
	}

	if _, err := toml.DecodeFile(f.Path, contents); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.Path, err)
	}

	if contents.Secrets == nil {
		contents.Secrets = make(map[string]string)
	}

	return contents, nil
}

func (f *File) save(contents *fileContents) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	encoded, err := toml.Marshal(contents)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := os.WriteFile(f.Path, encoded, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}

	return nil
}

// Read returns the value stored under name. A missing record is
// reported via found=false, not an error.
func (f *File) Read(name string) (string, bool, error) {
	contents, err := f.load()
	if err != nil {
		return "", false, err
	}

	value, found := contents.Secrets[name]
	return value, found, nil
}

// Write stores value under name, replacing any existing record.
func (f *File) Write(name, value string) error {
	contents, err := f.load()
	if err != nil {
		return err
	}

	contents.Secrets[name] = value
	return f.save(contents)
}

// Delete removes the record stored under name. Deleting a missing
// record is not an error.
func (f *File) Delete(name string) error {
	contents, err := f.load()
	if err != nil {
		return err
	}

	if _, found := contents.Secrets[name]; !found {
		return nil
	}

	delete(contents.Secrets, name)
	return f.save(contents)
}

// List returns the stored record names in sorted order.
func (f *File) List() ([]string, error) {
	contents, err := f.load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(contents.Secrets))
	for name := range contents.Secrets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}
