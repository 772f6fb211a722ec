// Package gitrepos finds git repositories under a directory.
package gitrepos

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/karrick/godirwalk"
)

// IterDir calls cb for dir if it is a repository (contains .git, or is a bare repo named *.git).
// Otherwise it descends into subdirectories, at most maxRecursion levels, in name order.
func IterDir(dir string, maxRecursion int, cb func(repo string) error) error {
	stat, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("can't stat passed dir, err: %v", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("passed dir is a file, expecting a dir")
	}

	if IsRepo(dir) {
		return cb(dir)
	}

	if maxRecursion == 0 {
		return nil
	}

	subs, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return fmt.Errorf("can't read passed dir, err: %v", err)
	}
	sort.Sort(subs)

	for _, sub := range subs {
		if !sub.IsDir() {
			continue
		}
		err := IterDir(filepath.Join(dir, sub.Name()), maxRecursion-1, cb)
		if err != nil {
			return err
		}
	}

	return nil
}

// IsRepo reports whether dir is a working tree root or a bare repository.
func IsRepo(dir string) bool {
	if ok, _ := dirContainsDir(dir, ".git"); ok {
		return true
	}
	loc, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	if filepath.Ext(loc) == ".git" {
		ok, _ := dirContainsDir(dir, "objects")
		return ok
	}
	return false
}

func dirContainsDir(dir string, sub string) (bool, error) {
	stat, err := os.Stat(filepath.Join(dir, sub))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("can't check if dir contains %v, dir: %v err: %v", sub, dir, err)
	}
	return stat.IsDir(), nil
}
