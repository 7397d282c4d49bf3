// Package version carries the tool identity stamped into build-info.json.
package version

import (
	git "github.com/go-git/go-git/v5"
	"github.com/google/uuid"
)

// Builder is the tool identity recorded in build metadata.
const Builder = "bookpages"

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/bookpages/internal/version.Version=v0.2.0".
var Version = "v0.1.2"

// NewBuildID returns a unique id for a single build run.
func NewBuildID() string { return uuid.NewString() }

// ResolveCommit returns the abbreviated HEAD commit of the repository
// containing path. Best effort: returns "" when path is not inside a git
// checkout or HEAD cannot be resolved.
func ResolveCommit(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	hash := head.Hash().String()
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return hash
}
