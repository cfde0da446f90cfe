package compiler

import (
	"io/fs"
	"path/filepath"
	"strings"

	terrors "git.home.luguber.info/inful/tonegen/internal/errors"
)

const (
	// ToneSuffix marks template sources. A file also counts as a template
	// when the suffix is followed by locale/variant segments (foo.tone.pt).
	ToneSuffix = ".tone"
	// JavaSuffix marks generated outputs.
	JavaSuffix = ".java"

	// maxDepth bounds tree traversal beneath the root.
	maxDepth = 10
)

// IsToneName reports whether a file name follows the template convention.
func IsToneName(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ToneSuffix) || strings.Contains(name, ToneSuffix+".")
}

// IsJavaName reports whether a file name follows the generated-output convention.
func IsJavaName(path string) bool {
	return strings.HasSuffix(filepath.Base(path), JavaSuffix)
}

// filesOfAKindAt returns every regular file beneath root matching the
// predicate, up to maxDepth levels down. Any traversal error is fatal: the
// batch cannot proceed without a complete listing.
func filesOfAKindAt(root string, match func(string) bool) ([]string, error) {
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if pathDepth(root, path) >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if match(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, terrors.DiscoveryError(walkErr, "walking "+root)
	}
	return files, nil
}

// pathDepth counts levels beneath root (the root itself is depth 0).
func pathDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func (c *Compiler) tonesAt(root string) ([]string, error) {
	return filesOfAKindAt(root, IsToneName)
}

func (c *Compiler) javaFilesAt(root string) ([]string, error) {
	return filesOfAKindAt(root, IsJavaName)
}
