package ingest

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chemtrack/sds-extractor/constants"
)

// ListDocuments walks root and returns the SDS document paths under it,
// sorted for deterministic batch ordering. Hidden files and directories
// are skipped.
func ListDocuments(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && name != "." {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if constants.IsAllowedExt(filepath.Ext(name)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
