package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dashboard-backend/internal/domains/post/model"
	"dashboard-backend/internal/infrastructure/database"
	pkgdb "dashboard-backend/pkg/database"
)

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

const postColumns = `id, user_id, title, slug, content, status, published_at, created_at, updated_at`

// CountByStatus is the single round trip behind the count endpoint. The raw
// error is returned so the handler can pass the database payload through.
func (r *postgresPostRepository) CountByStatus(ctx context.Context, userID uuid.UUID) ([]model.StatusCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count FROM count_posts($1)`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]model.StatusCount, 0, len(model.Priority))
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts = append(counts, model.StatusCount{Status: model.Status(status), Count: int(count)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (user_id, title, slug, content, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		post.UserID,
		post.Title,
		post.Slug,
		post.Content,
		string(post.Status),
		post.PublishedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

func (r *postgresPostRepository) Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*model.Post, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Post, error) {
		lockQuery := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 FOR UPDATE`

		post, err := scanPost(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrPostNotFound
			}
			return nil, fmt.Errorf("failed to lock post: %w", err)
		}

		if err := fn(post); err != nil {
			return nil, err
		}

		updateQuery := `
			UPDATE posts
			SET title = $2, slug = $3, content = $4, status = $5,
			    published_at = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at
		`

		err = tx.QueryRow(ctx, updateQuery,
			post.ID,
			post.Title,
			post.Slug,
			post.Content,
			string(post.Status),
			post.PublishedAt,
		).Scan(&post.UpdatedAt)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return nil, model.ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to update post: %w", err)
		}

		return post, nil
	})
}

func scanPost(row pgx.Row) (*model.Post, error) {
	post := &model.Post{}
	var status string

	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&status,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Status = model.Status(status)
	return post, nil
}
