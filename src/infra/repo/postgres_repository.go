package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
	"inkwell/src/infra/db"
)

// PostgresRepository implements BlogRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

var _ ports.BlogRepository = (*PostgresRepository)(nil)

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Posts

func (r *PostgresRepository) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	const q = `
		INSERT INTO posts (author_id, category_id, title, content, featured_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING post_id, author_id, category_id, title, content, featured_image, created_at
	`
	var p domain.Post
	err := r.pool.QueryRow(ctx, q,
		post.AuthorID, post.CategoryID, post.Title, post.Content, post.FeaturedImage,
	).Scan(&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Content, &p.FeaturedImage, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) GetPost(ctx context.Context, postID int64) (*domain.Post, error) {
	const q = `
		SELECT post_id, author_id, category_id, title, content, featured_image, created_at
		FROM posts
		WHERE post_id = $1
	`
	var p domain.Post
	if err := r.pool.QueryRow(ctx, q, postID).Scan(
		&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Content, &p.FeaturedImage, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("post")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) GetPostDetail(ctx context.Context, postID int64) (*ports.PostDetail, error) {
	const q = `
		SELECT p.post_id, p.title, p.content, p.featured_image,
		       COALESCE(u.name, ''), COALESCE(c.name, ''), p.created_at
		FROM posts p
		LEFT JOIN users u ON u.user_id = p.author_id
		LEFT JOIN categories c ON c.category_id = p.category_id
		WHERE p.post_id = $1
	`
	var d ports.PostDetail
	if err := r.pool.QueryRow(ctx, q, postID).Scan(
		&d.ID, &d.Title, &d.Content, &d.FeaturedImage,
		&d.AuthorName, &d.CategoryName, &d.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("post")
		}
		return nil, err
	}

	comments, err := r.listComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments
	return &d, nil
}

func (r *PostgresRepository) listComments(ctx context.Context, postID int64) ([]ports.CommentView, error) {
	const q = `
		SELECT cm.comment_id, COALESCE(u.name, ''), cm.body, cm.created_at
		FROM comments cm
		LEFT JOIN users u ON u.user_id = cm.author_id
		WHERE cm.post_id = $1
		ORDER BY cm.ordinal
	`
	rows, err := r.pool.Query(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []ports.CommentView{}
	for rows.Next() {
		var c ports.CommentView
		if err := rows.Scan(&c.ID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PostgresRepository) ListPosts(ctx context.Context, filter ports.PostFilter, limit, offset int) ([]ports.PostSummary, int, error) {
	// Both filters AND-combine; empty keyword and nil category match
	// everything. post_id ordering keeps pages stable.
	const where = `
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%')
		  AND ($2::bigint IS NULL OR p.category_id = $2)
	`

	var count int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM posts p`+where,
		filter.Keyword, filter.CategoryID,
	).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	const q = `
		SELECT p.post_id, p.title, p.content, p.featured_image,
		       COALESCE(u.name, ''), COALESCE(c.name, ''), p.created_at
		FROM posts p
		LEFT JOIN users u ON u.user_id = p.author_id
		LEFT JOIN categories c ON c.category_id = p.category_id
	` + where + `
		ORDER BY p.post_id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, q, filter.Keyword, filter.CategoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []ports.PostSummary{}
	for rows.Next() {
		var p ports.PostSummary
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.FeaturedImage,
			&p.AuthorName, &p.CategoryName, &p.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *PostgresRepository) UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	// author_id is immutable and deliberately absent from the SET list.
	const q = `
		UPDATE posts
		SET title = $2, content = $3, category_id = $4, featured_image = $5
		WHERE post_id = $1
		RETURNING post_id, author_id, category_id, title, content, featured_image, created_at
	`
	var p domain.Post
	err := r.pool.QueryRow(ctx, q,
		post.ID, post.Title, post.Content, post.CategoryID, post.FeaturedImage,
	).Scan(&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Content, &p.FeaturedImage, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("post")
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) DeletePost(ctx context.Context, postID int64) error {
	const q = `DELETE FROM posts WHERE post_id = $1`
	res, err := r.pool.Exec(ctx, q, postID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("post")
	}
	return nil
}

// Comments

func (r *PostgresRepository) AddComment(ctx context.Context, postID, authorID int64, body string) (*domain.Comment, error) {
	// The position subquery and the unique (post_id, ordinal) index
	// together keep append order consistent under concurrent inserts;
	// a losing writer surfaces as a unique violation.
	const q = `
		INSERT INTO comments (post_id, author_id, body, ordinal)
		VALUES ($1, $2, $3,
			(SELECT COALESCE(MAX(ordinal), 0) + 1 FROM comments WHERE post_id = $1))
		RETURNING comment_id, post_id, author_id, body, ordinal, created_at
	`
	var c domain.Comment
	err := r.pool.QueryRow(ctx, q, postID, authorID, body).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.Position, &c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("concurrent comment append, retry")
		}
		return nil, err
	}
	return &c, nil
}

// Categories

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `
		SELECT category_id, name, created_at
		FROM categories
		ORDER BY category_id
	`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	const q = `
		SELECT category_id, name, created_at
		FROM categories
		WHERE name = $1
	`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("category")
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const q = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING category_id, name, created_at
	`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("category with this name already exists")
		}
		return nil, err
	}
	return &c, nil
}

// Users

func (r *PostgresRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id, name, email, password_hash, created_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, name, email, passwordHash).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("email already registered")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT user_id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	const q = `
		SELECT user_id, name, email, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, userID).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return &u, nil
}
