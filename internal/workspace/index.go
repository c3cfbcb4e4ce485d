package workspace

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// IndexComplete is delivered when an asynchronous index finishes.
type IndexComplete struct {
	Root  string
	Paths []string
	Err   error
}

// Index returns the workspace-relative paths of the files under root,
// sorted. Dot files, vendored trees and paths for which exclude returns
// true are skipped.
func Index(ctx context.Context, root string, exclude func(rel string) bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped.
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if skip(rel, d.IsDir(), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

func skip(rel string, dir bool, exclude func(string) bool) bool {
	vendorPath := rel
	if dir {
		vendorPath += "/"
	}
	if enry.IsDotFile(rel) || enry.IsVendor(vendorPath) {
		return true
	}
	return exclude != nil && exclude(rel)
}

// IndexAsync indexes root on a new goroutine and passes the outcome to
// done from that goroutine.
func IndexAsync(ctx context.Context, root string, exclude func(rel string) bool, done func(IndexComplete)) {
	go func() {
		paths, err := Index(ctx, root, exclude)
		done(IndexComplete{Root: root, Paths: paths, Err: err})
	}()
}
