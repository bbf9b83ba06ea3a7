package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pasar-warga/internal/domain"
)

// ErrDuplicateReview surfaces the UNIQUE (listing_id, reviewer_id)
// violation so two concurrent submissions cannot both slip past the
// service-level existence check.
var ErrDuplicateReview = errors.New("review already exists for this listing and reviewer")

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsByListingAndReviewer(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error)
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, listing_id, reviewer_id, reviewed_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		review.ID, review.ListingID, review.ReviewerID, review.ReviewedID,
		review.Rating, review.Comment,
	).Scan(&review.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateReview
	}
	return err
}

func (r *reviewRepository) ExistsByListingAndReviewer(ctx context.Context, listingID, reviewerID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE listing_id = $1 AND reviewer_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, listingID, reviewerID)
	return exists, err
}

func (r *reviewRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	query := `
		SELECT
			rv.id, rv.listing_id, rv.reviewer_id, rv.reviewed_id, rv.rating, rv.comment, rv.created_at,
			u.id, u.full_name, u.avatar_url,
			l.id, l.title, l.images
		FROM reviews rv
		INNER JOIN users u ON rv.reviewer_id = u.id
		INNER JOIN listings l ON rv.listing_id = l.id
		WHERE 1=1`
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND rv.reviewed_id = $%d", len(args))
	}
	if filter.ListingID != nil {
		args = append(args, *filter.ListingID)
		query += fmt.Sprintf(" AND rv.listing_id = $%d", len(args))
	}
	query += " ORDER BY rv.created_at DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		var reviewer domain.UserRef
		var listing domain.ListingSummary

		err := rows.Scan(
			&rv.ID, &rv.ListingID, &rv.ReviewerID, &rv.ReviewedID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
			&reviewer.ID, &reviewer.FullName, &reviewer.AvatarURL,
			&listing.ID, &listing.Title, &listing.Images,
		)
		if err != nil {
			return nil, err
		}

		rv.Reviewer = &reviewer
		rv.Listing = &listing
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
