package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/katalvlaran/voxemit/cache"
	"github.com/katalvlaran/voxemit/matrix"
)

const (
	emittersDir = "emitters"
	cacheDir    = "cache"
	dirPerm     = 0o755
	filePerm    = 0o644
)

// Repository is a directory of emitter definitions and caches.
type Repository struct {
	root string
}

// Open returns a repository rooted at root. Nothing is created until the
// first write.
func Open(root string) *Repository {
	return &Repository{root: root}
}

// Root returns the repository directory.
func (r *Repository) Root() string { return r.root }

func checkName(kind, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s %q: %w", kind, name, ErrInvalidName)
	}

	return nil
}

func (r *Repository) groupPath(group string) string {
	return filepath.Join(r.root, emittersDir, group+".json")
}

// AddEmitter stores one definition. To add many, UpdateEmitters rewrites each
// group file once.
func (r *Repository) AddEmitter(group, name string, d Definition) error {
	return r.UpdateEmitters(map[string]map[string]Definition{group: {name: d}})
}

// UpdateEmitters merges definitions into their group files, replacing
// existing entries of the same name. Every definition is validated before
// any file is written.
func (r *Repository) UpdateEmitters(defs map[string]map[string]Definition) error {
	groups := make([]string, 0, len(defs))
	for group, named := range defs {
		if err := checkName("group", group); err != nil {
			return err
		}
		for name, d := range named {
			if err := checkName("emitter", name); err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				return fmt.Errorf("%s/%s: %w", group, name, err)
			}
		}
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		content, err := r.readGroup(group)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if content == nil {
			content = make(map[string]Definition)
		}
		for name, d := range defs[group] {
			content[name] = d
		}
		raw, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			return err
		}
		if err = writeFile(r.groupPath(group), raw); err != nil {
			return err
		}
	}

	return nil
}

// GetEmitter loads one definition.
func (r *Repository) GetEmitter(group, name string) (Definition, error) {
	if err := checkName("group", group); err != nil {
		return Definition{}, err
	}
	content, err := r.readGroup(group)
	if err != nil {
		return Definition{}, err
	}
	d, ok := content[name]
	if !ok {
		return Definition{}, fmt.Errorf("emitter %s/%s: %w", group, name, ErrNotFound)
	}

	return d, nil
}

// Emitters lists the names stored in a group, sorted.
func (r *Repository) Emitters(group string) ([]string, error) {
	if err := checkName("group", group); err != nil {
		return nil, err
	}
	content, err := r.readGroup(group)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (r *Repository) readGroup(group string) (map[string]Definition, error) {
	raw, err := os.ReadFile(r.groupPath(group))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("group %s: %w", group, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var content map[string]Definition
	if err = json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("group %s: %w: %w", group, ErrCorrupt, err)
	}

	return content, nil
}

// cacheFile is the stored form of one cache generation.
type cacheFile struct {
	Key    cache.Key `json:"key"`
	Matrix *CSR      `json:"matrix"`
}

func (r *Repository) cachePath(group, name string, key cache.Key) string {
	file := strconv.FormatFloat(key.MinWavelength, 'g', -1, 64) + "_" +
		strconv.FormatFloat(key.MaxWavelength, 'g', -1, 64) + "_" +
		strconv.Itoa(key.Bins) + ".json.sz"

	return filepath.Join(r.root, cacheDir, group, name, file)
}

// SaveCache stores a cache matrix for one emitter and window, snappy-compressed.
// It returns the number of bytes written.
func (r *Repository) SaveCache(group, name string, key cache.Key, m *matrix.CSR) (int, error) {
	if err := checkName("group", group); err != nil {
		return 0, err
	}
	if err := checkName("emitter", name); err != nil {
		return 0, err
	}
	if err := key.Validate(); err != nil {
		return 0, err
	}
	if m == nil || m.Cols() != key.Bins {
		return 0, fmt.Errorf("SaveCache: matrix does not have %d bins: %w", key.Bins, ErrInvalidDefinition)
	}
	raw, err := json.Marshal(cacheFile{Key: key, Matrix: FromMatrix(m)})
	if err != nil {
		return 0, err
	}
	compressed := snappy.Encode(nil, raw)

	return len(compressed), writeFile(r.cachePath(group, name, key), compressed)
}

// LoadCache reads a cache matrix stored by SaveCache.
func (r *Repository) LoadCache(group, name string, key cache.Key) (*matrix.CSR, error) {
	if err := checkName("group", group); err != nil {
		return nil, err
	}
	if err := checkName("emitter", name); err != nil {
		return nil, err
	}
	compressed, err := os.ReadFile(r.cachePath(group, name, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cache %s/%s %v: %w", group, name, key, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("cache %s/%s %v: %w: %w", group, name, key, ErrCorrupt, err)
	}
	var f cacheFile
	if err = json.Unmarshal(raw, &f); err != nil || f.Matrix == nil {
		return nil, fmt.Errorf("cache %s/%s %v: %w", group, name, key, ErrCorrupt)
	}
	if f.Key != key {
		return nil, fmt.Errorf("cache %s/%s: file holds %v, want %v: %w", group, name, f.Key, key, ErrCorrupt)
	}
	m, err := f.Matrix.Matrix()
	if err != nil {
		return nil, fmt.Errorf("cache %s/%s %v: %w: %w", group, name, key, ErrCorrupt, err)
	}
	if m.Cols() != key.Bins {
		return nil, fmt.Errorf("cache %s/%s %v: matrix has %d bins: %w", group, name, key, m.Cols(), ErrCorrupt)
	}

	return m, nil
}

// writeFile writes data through a temporary file and a rename, creating
// parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
