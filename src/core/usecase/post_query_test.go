package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/src/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedPosts(t *testing.T, repo *fakeRepo, authorID int64, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := repo.CreatePost(context.Background(), domain.Post{
			AuthorID: authorID,
			Title:    fmt.Sprintf("Post %d", i),
			Content:  "content",
		})
		require.NoError(t, err)
	}
}

func TestPostQueryList_Pagination(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	seedPosts(t, repo, author, 25)

	svc := NewPostQueryService(repo, discardLogger())

	page1, err := svc.List(context.Background(), ListParams{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 10)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 3, page1.Pages)

	page3, err := svc.List(context.Background(), ListParams{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page3.Posts, 5)
	assert.Equal(t, 3, page3.Pages)
}

func TestPostQueryList_StableOrderAcrossPages(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	seedPosts(t, repo, author, 25)

	svc := NewPostQueryService(repo, discardLogger())

	seen := make(map[int64]bool)
	for page := 1; page <= 3; page++ {
		result, err := svc.List(context.Background(), ListParams{Page: page})
		require.NoError(t, err)
		for _, p := range result.Posts {
			assert.False(t, seen[p.ID], "post %d appeared on more than one page", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestPostQueryList_PageDefaultsAndOutOfRange(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	seedPosts(t, repo, author, 5)

	svc := NewPostQueryService(repo, discardLogger())

	// Page below 1 is treated as page 1.
	result, err := svc.List(context.Background(), ListParams{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Posts, 5)

	// A page beyond range is empty, not an error.
	result, err = svc.List(context.Background(), ListParams{Page: 7})
	require.NoError(t, err)
	assert.Empty(t, result.Posts)
	assert.Equal(t, 1, result.Pages)
}

func TestPostQueryList_EmptyDatasetHasZeroPages(t *testing.T) {
	svc := NewPostQueryService(newFakeRepo(), discardLogger())

	result, err := svc.List(context.Background(), ListParams{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, result.Posts)
	assert.Equal(t, 0, result.Pages)
}

func TestPostQueryList_KeywordIsCaseInsensitiveSubstring(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	ctx := context.Background()

	_, err := repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "Hello World", Content: "c"})
	require.NoError(t, err)
	_, err = repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "Something else", Content: "c"})
	require.NoError(t, err)

	svc := NewPostQueryService(repo, discardLogger())

	result, err := svc.List(ctx, ListParams{Page: 1, Keyword: "hello"})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Hello World", result.Posts[0].Title)
}

func TestPostQueryList_FiltersCombineWithAnd(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	ctx := context.Background()

	goCat, err := repo.CreateCategory(ctx, "go")
	require.NoError(t, err)
	otherCat, err := repo.CreateCategory(ctx, "other")
	require.NoError(t, err)

	_, err = repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "Go tips", Content: "c", CategoryID: &goCat.ID})
	require.NoError(t, err)
	_, err = repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "Go tricks", Content: "c", CategoryID: &otherCat.ID})
	require.NoError(t, err)
	_, err = repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "Rust tips", Content: "c", CategoryID: &goCat.ID})
	require.NoError(t, err)

	svc := NewPostQueryService(repo, discardLogger())

	result, err := svc.List(ctx, ListParams{Page: 1, Keyword: "go", CategoryID: &goCat.ID})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Go tips", result.Posts[0].Title)
	assert.Equal(t, "go", result.Posts[0].CategoryName)
	assert.Equal(t, "alice", result.Posts[0].AuthorName)
}

func TestPostQueryList_DanglingCategoryShowsUnknown(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	ctx := context.Background()

	missing := int64(999)
	_, err := repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "Orphaned", Content: "c", CategoryID: &missing})
	require.NoError(t, err)

	svc := NewPostQueryService(repo, discardLogger())

	result, err := svc.List(ctx, ListParams{Page: 1})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Empty(t, result.Posts[0].CategoryName)
}

func TestPostQueryGet_NotFound(t *testing.T) {
	svc := NewPostQueryService(newFakeRepo(), discardLogger())

	_, err := svc.Get(context.Background(), 42)
	assert.True(t, domain.IsNotFound(err))
}

func TestPostQueryGet_ResolvesCommentsInOrder(t *testing.T) {
	repo := newFakeRepo()
	author := repo.seedUser("alice")
	commenter := repo.seedUser("bob")
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, domain.Post{AuthorID: author, Title: "T", Content: "C"})
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, post.ID, commenter, "first")
	require.NoError(t, err)
	_, err = repo.AddComment(ctx, post.ID, author, "second")
	require.NoError(t, err)

	svc := NewPostQueryService(repo, discardLogger())

	detail, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first", detail.Comments[0].Text)
	assert.Equal(t, "bob", detail.Comments[0].AuthorName)
	assert.Equal(t, "second", detail.Comments[1].Text)
	assert.Equal(t, "alice", detail.Comments[1].AuthorName)
}
