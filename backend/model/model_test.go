package model

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := InitDB(":memory:"); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = CloseDB()
	os.Exit(code)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = ParseID("abc")
	assert.ErrorIs(t, err, ErrMalformedID)
	_, err = ParseID("-1")
	assert.ErrorIs(t, err, ErrMalformedID)
	_, err = ParseID("")
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestInsertUserDuplicateEmail(t *testing.T) {
	user, err := InsertUser("dup@x.com", "digest")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = InsertUser("dup@x.com", "other-digest")
	assert.ErrorIs(t, err, ErrEmailTaken)

	n, err := CountUsers()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
}

func TestGetUserByEmailAndPassword(t *testing.T) {
	user, err := InsertUser("login@x.com", "digest-1")
	require.NoError(t, err)

	found, err := GetUserByEmailAndPassword("login@x.com", "digest-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	// Wrong digest and unknown email both read as absent.
	found, err = GetUserByEmailAndPassword("login@x.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, found)
	found, err = GetUserByEmailAndPassword("nobody@x.com", "digest-1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetFileByIDAndUserOwnership(t *testing.T) {
	owner, err := InsertUser("owner@x.com", "d")
	require.NoError(t, err)
	other, err := InsertUser("other@x.com", "d")
	require.NoError(t, err)

	f := &File{UserID: owner.ID, Name: "doc.txt", Type: TypeFile, LocalPath: "ref-1"}
	require.NoError(t, CreateFile(f))

	got, err := GetFileByIDAndUser(f.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "doc.txt", got.Name)

	// A foreign entry reads as absent, not as a permission error.
	got, err = GetFileByIDAndUser(f.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListFilesByParentPagination(t *testing.T) {
	owner, err := InsertUser("pages@x.com", "d")
	require.NoError(t, err)

	parent := &File{UserID: owner.ID, Name: "dir", Type: TypeFolder}
	require.NoError(t, CreateFile(parent))

	for i := 0; i < 45; i++ {
		require.NoError(t, CreateFile(&File{
			UserID:   owner.ID,
			Name:     "f",
			Type:     TypeFile,
			ParentID: parent.ID,
			LocalPath: "ref",
		}))
	}

	page0, err := ListFilesByParent(owner.ID, parent.ID, 0)
	require.NoError(t, err)
	assert.Len(t, page0, 20)
	page1, err := ListFilesByParent(owner.ID, parent.ID, 1)
	require.NoError(t, err)
	assert.Len(t, page1, 20)
	page2, err := ListFilesByParent(owner.ID, parent.ID, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	page3, err := ListFilesByParent(owner.ID, parent.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, page3)

	// Ordered by id, no overlap between pages.
	assert.Less(t, page0[19].ID, page1[0].ID)

	// Another owner sees nothing under the same parent.
	stranger, err := InsertUser("stranger@x.com", "d")
	require.NoError(t, err)
	empty, err := ListFilesByParent(stranger.ID, parent.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSetFilePublic(t *testing.T) {
	owner, err := InsertUser("vis@x.com", "d")
	require.NoError(t, err)
	f := &File{UserID: owner.ID, Name: "pic.png", Type: TypeImage, LocalPath: "ref-2"}
	require.NoError(t, CreateFile(f))

	updated, err := SetFilePublic(f.ID, owner.ID, true)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsPublic)

	updated, err = SetFilePublic(f.ID, owner.ID, false)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.IsPublic)

	// Not owned or not existing both read as absent.
	updated, err = SetFilePublic(f.ID, owner.ID+1000, true)
	require.NoError(t, err)
	assert.Nil(t, updated)
	updated, err = SetFilePublic(99999999, owner.ID, true)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDBAlive(t *testing.T) {
	assert.True(t, DBAlive(context.Background()))
}
