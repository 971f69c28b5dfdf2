package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
)

// fakeRepo is an in-memory BlogRepository for service tests. It mirrors
// the SQL repository's observable behavior: stable post ordering by ID,
// case-insensitive keyword matching, joined display names that fall
// back to empty strings for missing references.
type fakeRepo struct {
	posts      map[int64]domain.Post
	comments   map[int64][]domain.Comment
	categories map[int64]domain.Category
	users      map[int64]domain.User
	nextID     int64
}

var _ ports.BlogRepository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:      make(map[int64]domain.Post),
		comments:   make(map[int64][]domain.Comment),
		categories: make(map[int64]domain.Category),
		users:      make(map[int64]domain.User),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) Health(ctx context.Context) error { return nil }

func (f *fakeRepo) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	post.ID = f.id()
	post.CreatedAt = time.Now()
	f.posts[post.ID] = post
	return &post, nil
}

func (f *fakeRepo) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	post, ok := f.posts[postID]
	if !ok {
		return nil, domain.NewNotFoundError("post")
	}
	return &post, nil
}

func (f *fakeRepo) GetPostDetail(ctx context.Context, postID int64) (*ports.PostDetail, error) {
	post, ok := f.posts[postID]
	if !ok {
		return nil, domain.NewNotFoundError("post")
	}
	detail := ports.PostDetail{PostSummary: f.summarize(post), Comments: []ports.CommentView{}}
	for _, cm := range f.comments[postID] {
		detail.Comments = append(detail.Comments, ports.CommentView{
			ID:         cm.ID,
			AuthorName: f.userName(cm.AuthorID),
			Text:       cm.Body,
			CreatedAt:  cm.CreatedAt,
		})
	}
	return &detail, nil
}

func (f *fakeRepo) ListPosts(ctx context.Context, filter ports.PostFilter, limit, offset int) ([]ports.PostSummary, int, error) {
	ids := make([]int64, 0, len(f.posts))
	for id := range f.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := []ports.PostSummary{}
	for _, id := range ids {
		post := f.posts[id]
		if filter.Keyword != "" &&
			!strings.Contains(strings.ToLower(post.Title), strings.ToLower(filter.Keyword)) {
			continue
		}
		if filter.CategoryID != nil &&
			(post.CategoryID == nil || *post.CategoryID != *filter.CategoryID) {
			continue
		}
		matched = append(matched, f.summarize(post))
	}

	count := len(matched)
	if offset >= count {
		return []ports.PostSummary{}, count, nil
	}
	end := offset + limit
	if end > count {
		end = count
	}
	return matched[offset:end], count, nil
}

func (f *fakeRepo) UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	stored, ok := f.posts[post.ID]
	if !ok {
		return nil, domain.NewNotFoundError("post")
	}
	post.AuthorID = stored.AuthorID
	post.CreatedAt = stored.CreatedAt
	f.posts[post.ID] = post
	return &post, nil
}

func (f *fakeRepo) DeletePost(ctx context.Context, postID int64) error {
	if _, ok := f.posts[postID]; !ok {
		return domain.NewNotFoundError("post")
	}
	delete(f.posts, postID)
	delete(f.comments, postID)
	return nil
}

func (f *fakeRepo) AddComment(ctx context.Context, postID, authorID int64, body string) (*domain.Comment, error) {
	if _, ok := f.posts[postID]; !ok {
		return nil, domain.NewNotFoundError("post")
	}
	comment := domain.Comment{
		ID:        f.id(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		Position:  len(f.comments[postID]) + 1,
		CreatedAt: time.Now(),
	}
	f.comments[postID] = append(f.comments[postID], comment)
	return &comment, nil
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ids := make([]int64, 0, len(f.categories))
	for id := range f.categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []domain.Category{}
	for _, id := range ids {
		out = append(out, f.categories[id])
	}
	return out, nil
}

func (f *fakeRepo) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, domain.NewNotFoundError("category")
}

func (f *fakeRepo) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return nil, domain.NewConflictError("category with this name already exists")
		}
	}
	category := domain.Category{ID: f.id(), Name: name, CreatedAt: time.Now()}
	f.categories[category.ID] = category
	return &category, nil
}

func (f *fakeRepo) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, domain.NewConflictError("email already registered")
		}
	}
	user := domain.User{ID: f.id(), Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user")
}

func (f *fakeRepo) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return &user, nil
}

func (f *fakeRepo) summarize(post domain.Post) ports.PostSummary {
	summary := ports.PostSummary{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		FeaturedImage: post.FeaturedImage,
		AuthorName:    f.userName(post.AuthorID),
		CreatedAt:     post.CreatedAt,
	}
	if post.CategoryID != nil {
		if c, ok := f.categories[*post.CategoryID]; ok {
			summary.CategoryName = c.Name
		}
	}
	return summary
}

func (f *fakeRepo) userName(userID int64) string {
	if u, ok := f.users[userID]; ok {
		return u.Name
	}
	return ""
}

// seedUser registers a user directly, bypassing password hashing.
func (f *fakeRepo) seedUser(name string) int64 {
	user := domain.User{ID: f.id(), Name: name, Email: name + "@example.com", CreatedAt: time.Now()}
	f.users[user.ID] = user
	return user.ID
}
