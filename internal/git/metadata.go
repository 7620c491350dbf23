// Package git reads repository metadata for report headers.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Metadata identifies the checkout a report was produced from.
type Metadata struct {
	Repo   string
	Commit string
	Branch string
}

// validateRoot validates and normalizes a repository root path.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// RepoMetadata returns metadata for the repository containing root,
// searching parent directories. Fields are empty when they cannot be read;
// the error is only non-nil when root is not inside a repository.
func RepoMetadata(root string) (Metadata, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return Metadata{}, err
	}
	repo, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Metadata{}, fmt.Errorf("open repository: %w", err)
	}

	var md Metadata
	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			md.Repo = ShortRemote(urls[0])
		}
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		md.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			md.Branch = head.Name().Short()
		} else {
			md.Branch = "HEAD"
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// unborn branch: report its name without a commit
		if ref, err := repo.Reference(plumbing.HEAD, false); err == nil && ref.Target().IsBranch() {
			md.Branch = ref.Target().Short()
		}
	}
	return md, nil
}

// ShortRemote trims a remote URL to owner/name when it points at GitHub,
// and drops a trailing ".git" otherwise.
func ShortRemote(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "github.com"); i >= 0 {
		s = s[i+len("github.com"):]
		return strings.TrimLeft(s, ":/")
	}
	return s
}
