// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with one of the specified extensions. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// CollectFiles expands every path into the files it names: a file is kept if
// its extension matches, a directory is searched recursively. Each file is
// listed once, in the order found. A path that does not exist is an error.
func CollectFiles(paths []string, extensions ...string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if hasExtension(path, extensions) {
				add(path)
			}
			continue
		}
		found, err := FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return all, nil
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
