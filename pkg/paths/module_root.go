package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GrammaTech/gtirb-go/pkg/gtirberrors"
)

const (
	// ModFile marks the root of a Go module.
	ModFile = "go.mod"

	// VersionFile holds the version fields, next to [ModFile].
	VersionFile = "version.txt"
)

// FindModuleRoot returns the closest (innermost) directory containing a
// go.mod file, searching bottom-up from path toward /. This matches how the
// go command locates the main module.
func FindModuleRoot(path string) (string, error) {
	f, err := findClosestFile("/", path, func(s string) (bool, error) {
		checkPath := filepath.Join(s, ModFile)
		fi, err := os.Lstat(checkPath)
		if err != nil {
			return false, fmt.Errorf("%s: %w", checkPath, err)
		}

		return !fi.IsDir(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", ModFile, err)
	}

	return f, nil
}

// FindVersionFile returns the path of version.txt at the root of the module
// containing path.
func FindVersionFile(path string) (string, error) {
	root, err := FindModuleRoot(path)
	if err != nil {
		return "", err
	}

	vf := filepath.Join(root, VersionFile)

	fi, err := os.Stat(vf)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", vf, gtirberrors.ErrFileNotFound, err)
	}

	if fi.IsDir() {
		return "", fmt.Errorf("%s: %w", vf, gtirberrors.ErrFileNotFound)
	}

	return vf, nil
}

// findClosestFile walks from path upward toward root, returning the first
// directory where test returns true.
func findClosestFile(root, path string, test func(string) (bool, error)) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	if !strings.HasPrefix(pathAbs, rootAbs) {
		return "", gtirberrors.ErrResolvedOutsideRepo
	}

	currentDir := pathAbs
	for {
		match, err := test(currentDir)
		if err == nil && match {
			return currentDir, nil
		}

		if currentDir == rootAbs {
			break
		}

		currentDir = filepath.Dir(currentDir)
	}

	return "", gtirberrors.ErrFileNotFound
}
