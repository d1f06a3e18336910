// Package vault provides the host surfaces the engine consumes: a
// filesystem-backed markdown vault, an in-memory line editor, and the
// list-item metadata index. The engine itself never touches the filesystem;
// all I/O flows through whole-file read-modify-write transactions here.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Vault is a directory of markdown notes addressed by slash-separated paths
// relative to its root.
type Vault struct {
	root string
}

// Open returns a Vault rooted at dir.
func Open(dir string) (*Vault, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault: %s is not a directory", dir)
	}
	return &Vault{root: dir}, nil
}

// Root returns the vault's filesystem root directory.
func (v *Vault) Root() string {
	return v.root
}

func (v *Vault) osPath(vaultPath string) string {
	return filepath.Join(v.root, filepath.FromSlash(vaultPath))
}

// Exists reports whether a note exists at the given vault path.
func (v *Vault) Exists(vaultPath string) bool {
	info, err := os.Stat(v.osPath(vaultPath))
	return err == nil && !info.IsDir()
}

// Read returns the full text of a note.
func (v *Vault) Read(vaultPath string) (string, error) {
	data, err := os.ReadFile(v.osPath(vaultPath))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", vaultPath, err)
	}
	return string(data), nil
}

// Write replaces the full text of a note, creating parent directories as
// needed.
func (v *Vault) Write(vaultPath, text string) error {
	p := v.osPath(vaultPath)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("writing %s: creating directory: %w", vaultPath, err)
	}
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", vaultPath, err)
	}
	return nil
}

// Create materializes an empty note at the given vault path if none exists.
func (v *Vault) Create(vaultPath string) error {
	if v.Exists(vaultPath) {
		return nil
	}
	return v.Write(vaultPath, "")
}

// ReadModifyWrite applies fn to the note's current text and persists the
// result in one scoped transaction. Commands run strictly sequentially, so
// no cross-command locking exists; each invocation starts from a fresh read.
func (v *Vault) ReadModifyWrite(vaultPath string, fn func(old string) (string, error)) error {
	old, err := v.Read(vaultPath)
	if err != nil {
		return err
	}
	updated, err := fn(old)
	if err != nil {
		return err
	}
	if updated == old {
		return nil
	}
	return v.Write(vaultPath, updated)
}

// ResolveLink resolves a wikilink target, relative to the note it appears
// in, to a vault path. Resolution order follows the usual vault convention:
// an exact root-relative path, then a note in the linking file's own folder,
// then the first note anywhere in the vault whose basename matches.
func (v *Vault) ResolveLink(target, fromPath string) (string, bool) {
	target = strings.TrimSuffix(target, ".md")

	if candidate := target + ".md"; v.Exists(candidate) {
		return candidate, true
	}
	if dir := path.Dir(fromPath); dir != "." {
		if candidate := path.Join(dir, target+".md"); v.Exists(candidate) {
			return candidate, true
		}
	}
	if strings.Contains(target, "/") {
		return "", false
	}

	// Basename search, lexical walk order.
	var found string
	base := target + ".md"
	_ = filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		if d.Name() == base {
			rel, relErr := filepath.Rel(v.root, p)
			if relErr == nil {
				found = filepath.ToSlash(rel)
			}
		}
		return nil
	})
	if found == "" {
		return "", false
	}
	return found, true
}
