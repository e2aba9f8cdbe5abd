package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/unityconverters/samplereport/internal/domain"
)

const shortHashLen = 7

// GitInfoAdapter implements domain.GitInfo using go-git. Unity projects often
// live in a subdirectory of the repository, so the .git directory is searched
// upwards from the project root.
type GitInfoAdapter struct{}

var _ domain.GitInfo = (*GitInfoAdapter)(nil)

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ShortHash abbreviates a commit hash the way report headers print it.
func ShortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
