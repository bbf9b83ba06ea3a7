package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pasar-warga/internal/domain"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ListingStatus) (*domain.Listing, error)
}

type listingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, user_id, category_id, title, description, price, condition, images, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		listing.ID, listing.UserID, listing.CategoryID, listing.Title,
		listing.Description, listing.Price, listing.Condition,
		listing.Images, listing.Status, listing.ExpiresAt,
	).Scan(&listing.CreatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	query := `SELECT * FROM listings WHERE id = $1`

	err := r.db.GetContext(ctx, &listing, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := listingSelect + ` WHERE l.id = $1`

	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	listing, err := scanListing(rows)
	if err != nil {
		return nil, err
	}
	return listing, rows.Err()
}

func (r *listingRepository) List(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	query := listingSelect + ` WHERE l.status = 'active' AND l.expires_at > NOW()`
	args := []interface{}{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (l.title ILIKE $%d OR l.description ILIKE $%d)", n, n)
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND l.category_id = $%d", len(args))
	}
	if filter.Condition != "" {
		args = append(args, filter.Condition)
		query += fmt.Sprintf(" AND l.condition = $%d", len(args))
	}

	switch filter.Sort {
	case domain.SortOldest:
		query += " ORDER BY l.created_at ASC"
	case domain.SortPriceLow:
		query += " ORDER BY l.price ASC NULLS LAST, l.created_at DESC"
	case domain.SortPriceHigh:
		query += " ORDER BY l.price DESC NULLS LAST, l.created_at DESC"
	default:
		query += " ORDER BY l.created_at DESC"
	}

	return r.queryListings(ctx, query, args...)
}

func (r *listingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	query := listingSelect + ` WHERE l.user_id = $1 ORDER BY l.created_at DESC`
	return r.queryListings(ctx, query, userID)
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ListingStatus) (*domain.Listing, error) {
	var listing domain.Listing
	query := `
		UPDATE listings
		SET status = $2
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &listing, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

const listingSelect = `
	SELECT
		l.id, l.user_id, l.category_id, l.title, l.description, l.price,
		l.condition, l.images, l.status, l.created_at, l.expires_at,
		c.id, c.name, c.slug,
		u.id, u.full_name, u.avatar_url
	FROM listings l
	INNER JOIN categories c ON l.category_id = c.id
	INNER JOIN users u ON l.user_id = u.id`

func scanListing(rows *sqlx.Rows) (*domain.Listing, error) {
	var l domain.Listing
	var category domain.Category
	var seller domain.UserRef

	err := rows.Scan(
		&l.ID, &l.UserID, &l.CategoryID, &l.Title, &l.Description, &l.Price,
		&l.Condition, &l.Images, &l.Status, &l.CreatedAt, &l.ExpiresAt,
		&category.ID, &category.Name, &category.Slug,
		&seller.ID, &seller.FullName, &seller.AvatarURL,
	)
	if err != nil {
		return nil, err
	}

	l.Category = &category
	l.Seller = &seller
	return &l, nil
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...interface{}) ([]domain.Listing, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}
