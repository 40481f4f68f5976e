package planner

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edmv-dev/edmv/internal/catalog"
	"github.com/edmv-dev/edmv/internal/config"
	"github.com/edmv-dev/edmv/internal/listing"
)

// mockFS is an in-memory FS for planner tests. Only Exists matters here;
// the planner never mutates the filesystem.
type mockFS struct {
	existing  map[string]bool
	existsErr map[string]error
}

func newMockFS(paths ...string) *mockFS {
	m := &mockFS{existing: make(map[string]bool), existsErr: make(map[string]error)}
	for _, p := range paths {
		m.existing[p] = true
	}
	return m
}

func (m *mockFS) Lstat(path string) (os.FileInfo, error) { return nil, os.ErrNotExist }

func (m *mockFS) Exists(path string) (bool, error) {
	if err := m.existsErr[path]; err != nil {
		return false, err
	}
	return m.existing[path], nil
}

func (m *mockFS) MkdirAll(path string, perm os.FileMode) error { return nil }
func (m *mockFS) Rename(oldpath, newpath string) error         { return nil }
func (m *mockFS) Remove(path string) error                     { return nil }
func (m *mockFS) RemoveAll(path string) error                  { return nil }
func (m *mockFS) Copy(src, dst string) error                   { return nil }
func (m *mockFS) ReadFile(path string) ([]byte, error)         { return nil, os.ErrNotExist }

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		BaseDir: "/work",
		Entries: []catalog.Entry{
			{Text: "a.txt", Path: "a.txt", Abs: "/work/a.txt", Kind: catalog.KindFile, Index: 0},
			{Text: "b.txt", Path: "b.txt", Abs: "/work/b.txt", Kind: catalog.KindFile, Index: 1},
			{Text: "docs", Path: "docs", Abs: "/work/docs", Kind: catalog.KindDir, Index: 2},
		},
	}
}

// fsMatchingCatalog returns a mockFS where every catalog entry exists.
func fsMatchingCatalog() *mockFS {
	return newMockFS("/work/a.txt", "/work/b.txt", "/work/docs", "/work")
}

func opTypes(p *Plan) []string {
	out := make([]string, 0, len(p.Operations))
	for _, op := range p.Operations {
		out = append(out, op.Type)
	}
	return out
}

func TestBuild_UnchangedListingIsAllNoops(t *testing.T) {
	c := testCatalog()
	text, err := listing.Encode(c)
	require.NoError(t, err)

	fs := fsMatchingCatalog()
	plan, err := Build(c, listing.Decode(text), &config.Options{}, fs)
	require.NoError(t, err)
	assert.Equal(t, []string{OpNoop, OpNoop, OpNoop}, opTypes(plan))
	assert.True(t, plan.Valid())
	assert.Empty(t, plan.Collisions)
	assert.Zero(t, plan.Actionable())

	seq, err := plan.Sequence(fs)
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func TestBuild_LineCountMismatch(t *testing.T) {
	c := testCatalog()
	_, err := Build(c, listing.Decode("a.txt\nb.txt"), &config.Options{}, fsMatchingCatalog())
	require.ErrorIs(t, err, ErrLineCountMismatch)

	var mismatch *LineCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Expected)
	assert.Equal(t, 2, mismatch.Actual)
}

func TestBuild_RenameClassifiesAsMove(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("renamed.txt\nb.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	require.Equal(t, []string{OpMove, OpNoop, OpNoop}, opTypes(plan))
	op := plan.Operations[0]
	assert.Equal(t, "a.txt", op.Source)
	assert.Equal(t, "renamed.txt", op.Target)
	assert.Equal(t, "/work/renamed.txt", op.TargetAbs)
	assert.True(t, plan.Valid())
}

func TestBuild_CopyOptionClassifiesAsCopy(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("copy.txt\nb.txt\ndocs/"), &config.Options{Copy: true}, fsMatchingCatalog())
	require.NoError(t, err)
	assert.Equal(t, []string{OpCopy, OpNoop, OpNoop}, opTypes(plan))
}

func TestBuild_DeletionMarkerClassifiesAsDelete(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("a.txt\n//b.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	require.Equal(t, []string{OpNoop, OpDelete, OpNoop}, opTypes(plan))
	assert.Equal(t, "b.txt", plan.Operations[1].Source)
	assert.True(t, plan.Valid())
}

func TestBuild_DuplicatedDestinationIsFatal(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("same.txt\nsame.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.False(t, plan.Valid())
	require.Len(t, plan.Fatal(), 1)
	assert.Contains(t, plan.Fatal()[0].Reason, "duplicated destination")
}

// Retargeting one entry onto another entry's unchanged path collides the
// same way an explicit duplicate does.
func TestBuild_MoveOntoRetainedPathIsFatal(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("b.txt\nb.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.False(t, plan.Valid())
	require.Len(t, plan.Fatal(), 1)
	assert.Contains(t, plan.Fatal()[0].Reason, "keeps its path")
}

func TestBuild_SwapIsCollisionFree(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("b.txt\na.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.Equal(t, []string{OpMove, OpMove, OpNoop}, opTypes(plan))
	assert.Empty(t, plan.Collisions)
	assert.True(t, plan.Valid())
}

func TestBuild_CopySwapDoesNotVacate(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("b.txt\na.txt\ndocs/"), &config.Options{Copy: true}, fsMatchingCatalog())
	require.NoError(t, err)

	// Copies leave their sources behind, so both destinations still exist.
	assert.True(t, plan.Valid())
	assert.Len(t, plan.Exists(), 2)
}

func TestBuild_DestinationExistsIsNotFatal(t *testing.T) {
	c := testCatalog()
	fs := fsMatchingCatalog()
	fs.existing["/work/taken.txt"] = true

	plan, err := Build(c, listing.Decode("taken.txt\nb.txt\ndocs/"), &config.Options{}, fs)
	require.NoError(t, err)

	assert.True(t, plan.Valid())
	require.Len(t, plan.Exists(), 1)
	assert.Equal(t, "destination exists", plan.Exists()[0].Reason)
}

func TestBuild_MoveOntoDeletedPathIsFatal(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("b.txt\n//b.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.False(t, plan.Valid())
	require.Len(t, plan.Fatal(), 1)
	assert.Contains(t, plan.Fatal()[0].Reason, "marked for deletion")
}

func TestBuild_NestedDestinationsAreFatal(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("out\nout/b.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.False(t, plan.Valid())
	require.Len(t, plan.Fatal(), 1)
	assert.Contains(t, plan.Fatal()[0].Reason, "included in other destination")
}

func TestBuild_DestinationInsideSourceIsFatal(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("a.txt\nb.txt\ndocs/inner/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.False(t, plan.Valid())
	require.Len(t, plan.Fatal(), 1)
	assert.Contains(t, plan.Fatal()[0].Reason, "included in source")
}

func TestBuild_TrailingSeparatorOnFileFails(t *testing.T) {
	c := testCatalog()
	_, err := Build(c, listing.Decode("renamed/\nb.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.ErrorIs(t, err, ErrUnresolvableTarget)

	var unresolvable *UnresolvableTargetError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, "missing file name", unresolvable.Reason)
}

func TestBuild_EmptyTargetFails(t *testing.T) {
	c := testCatalog()
	_, err := Build(c, listing.Decode(".\nb.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.ErrorIs(t, err, ErrUnresolvableTarget)
}

func TestBuild_ExistenceCheckFailureIsFatal(t *testing.T) {
	c := testCatalog()
	fs := fsMatchingCatalog()
	fs.existsErr["/work/renamed.txt"] = errors.New("permission denied")

	plan, err := Build(c, listing.Decode("renamed.txt\nb.txt\ndocs/"), &config.Options{}, fs)
	require.NoError(t, err)
	assert.False(t, plan.Valid())
}

func TestBuild_CollectsMissingParentDirs(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("nested/deep/a.txt\nb.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)

	assert.Equal(t, []string{"/work/nested/deep"}, plan.Dirs)
}

func TestBuild_ExistingParentDirsAreNotCollected(t *testing.T) {
	c := testCatalog()
	plan, err := Build(c, listing.Decode("renamed.txt\nb.txt\ndocs/"), &config.Options{}, fsMatchingCatalog())
	require.NoError(t, err)
	assert.Empty(t, plan.Dirs)
}
