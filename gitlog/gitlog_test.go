package gitlog

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, messages ...string) (*git.Repository, []string) {
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var shas []string
	for i, msg := range messages {
		f, err := fs.Create("file.txt")
		require.NoError(t, err)
		_, err = f.Write([]byte(fmt.Sprintf("revision %d\n", i)))
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = wt.Add("file.txt")
		require.NoError(t, err)

		hash, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: base.Add(time.Duration(i) * time.Minute)},
		})
		require.NoError(t, err)
		shas = append(shas, hash.String())
	}

	return repo, shas
}

func messages(commits []Commit) []string {
	return lo.Map(commits, func(c Commit, _ int) string { return c.Message })
}

func TestRangeAll(t *testing.T) {
	repo, shas := newRepo(t, "feat: one", "fix: two", "docs: three")

	commits, err := Range(repo, "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"feat: one", "fix: two", "docs: three"}, messages(commits))
	assert.Equal(t, shas[0], commits[0].SHA)
}

func TestRangeFrom(t *testing.T) {
	repo, shas := newRepo(t, "feat: one", "fix: two", "docs: three")

	commits, err := Range(repo, shas[0], "")
	require.NoError(t, err)
	assert.Equal(t, []string{"fix: two", "docs: three"}, messages(commits))

	commits, err = Range(repo, shas[0], shas[1])
	require.NoError(t, err)
	assert.Equal(t, []string{"fix: two"}, messages(commits))
}

func TestRangeUnknownRevision(t *testing.T) {
	repo, _ := newRepo(t, "feat: one")

	_, err := Range(repo, "does-not-exist", "")
	assert.Error(t, err)
}

func TestRangeLimit(t *testing.T) {
	repo, shas := newRepo(t, "feat: one", "fix: two", "docs: three", "test: four", "ci: five")

	commits, err := RangeLimit(repo, "", "", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs: three", "test: four", "ci: five"}, messages(commits))

	// The cap only applies without a lower bound.
	commits, err = RangeLimit(repo, shas[0], "", 2)
	require.NoError(t, err)
	assert.Len(t, commits, 4)
}
