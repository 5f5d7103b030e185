package files

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/registry"
)

// ErrUnknownExtension is returned for paths whose extension has no
// registered file kind. Like entity creation, file-kind lookup never falls
// back.
var ErrUnknownExtension = errors.New("no file kind registered for extension")

// SceneFile is a scene file wrapper. Its identity is the file path.
type SceneFile interface {
	entity.Entity
	Path() string
	Save(data SceneData) error
	Load() (SceneData, error)
}

// File is the base of every file wrapper.
type File struct {
	entity.Base
}

func newFile(path string) File {
	return File{Base: entity.NewBase(path)}
}

// Path returns the file path.
func (f File) Path() string { return f.FullName() }

// AsciiFile stores a scene description as YAML (.ma).
type AsciiFile struct {
	File
}

func (f AsciiFile) GoString() string { return entity.Repr("AsciiFile", f.Path()) }

func (f AsciiFile) Save(data SceneData) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("save %s: %w", f.Path(), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("save %s: %w", f.Path(), err)
	}
	return os.WriteFile(f.Path(), buf.Bytes(), 0o644)
}

func (f AsciiFile) Load() (SceneData, error) {
	raw, err := os.ReadFile(f.Path())
	if err != nil {
		return SceneData{}, err
	}
	return DecodeYAML(bytes.NewReader(raw))
}

// BinaryFile stores a scene description as compact JSON (.mb).
type BinaryFile struct {
	File
}

func (f BinaryFile) GoString() string { return entity.Repr("BinaryFile", f.Path()) }

func (f BinaryFile) Save(data SceneData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("save %s: %w", f.Path(), err)
	}
	return os.WriteFile(f.Path(), raw, 0o644)
}

func (f BinaryFile) Load() (SceneData, error) {
	raw, err := os.ReadFile(f.Path())
	if err != nil {
		return SceneData{}, err
	}
	return DecodeJSON(bytes.NewReader(raw))
}

// ObjFile exports geometry nodes as a flat group list (.obj). Import is not
// supported; obj carries no scene description to replay.
type ObjFile struct {
	File
}

func (f ObjFile) GoString() string { return entity.Repr("ObjFile", f.Path()) }

func (f ObjFile) Save(data SceneData) error {
	var buf bytes.Buffer
	buf.WriteString("# exported scene groups\n")
	for _, node := range data.Nodes {
		if node.Type == "mesh" || node.Type == "nurbsSurface" {
			fmt.Fprintf(&buf, "g %s\n", strings.ReplaceAll(node.Name, ":", "_"))
		}
	}
	return os.WriteFile(f.Path(), buf.Bytes(), 0o644)
}

func (f ObjFile) Load() (SceneData, error) {
	return SceneData{}, fmt.Errorf("load %s: obj files carry no scene description", f.Path())
}

// RegisterKinds merges the file kinds into reg's misc category: the same
// tag→constructor pattern the entity families use, keyed by extension.
func RegisterKinds(reg *registry.Registry) {
	reg.RegisterTypes(registry.CategoryMisc, map[string]registry.Ctor{
		".ma":  func(_ entity.Env, path string) entity.Entity { return AsciiFile{newFile(path)} },
		".mb":  func(_ entity.Env, path string) entity.Entity { return BinaryFile{newFile(path)} },
		".obj": func(_ entity.Env, path string) entity.Entity { return ObjFile{newFile(path)} },
	})
}

func init() {
	registry.Populate(RegisterKinds)
}

// ForPath returns the wrapper for a path by its extension. Unknown
// extensions are an error, never a fallback. A nil registry uses the
// process default.
func ForPath(reg *registry.Registry, path string) (SceneFile, error) {
	if reg == nil {
		reg = registry.Default()
	}
	ext := strings.ToLower(filepath.Ext(path))
	ctor, ok := reg.Lookup(registry.CategoryMisc, ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
	wrapped := ctor(entity.Env{}, path)
	file, ok := wrapped.(SceneFile)
	if !ok {
		return nil, fmt.Errorf("file kind for %q is not a scene file: %T", ext, wrapped)
	}
	return file, nil
}
