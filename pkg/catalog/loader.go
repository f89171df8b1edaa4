package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Load reads catalogs from a single document file or from every catalog file
// under a directory. Directories are walked the way LoadFS walks a
// filesystem; a file must itself be a catalog document.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog: load path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return nil, err
	}
	store := NewStore()
	if err := registerDocument(store, doc, path); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS walks the provided filesystem and parses JSON/YAML catalog files into
// a store. Each file maps catalog names to entry triples:
//
//	catalogs:
//	  states:
//	    - [Alabama, 1, 1]
//	    - [Alaska, 2, 1]
//
// When fsys is nil or no catalog files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		return registerDocument(store, doc, path)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type documentFile struct {
	Catalogs map[string]Catalog `json:"catalogs" yaml:"catalogs"`
}

// registerDocument moves a parsed document's catalogs into the store,
// rejecting blank names and names the store already carries.
func registerDocument(store *Store, doc documentFile, source string) error {
	for name, c := range doc.Catalogs {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("catalog: file %s defines an empty catalog name", source)
		}
		if store.Has(trimmed) {
			return fmt.Errorf("catalog: duplicate catalog %q (file %s)", trimmed, source)
		}
		if err := store.Register(trimmed, c); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
