package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pasar-warga/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListConversation(ctx context.Context, listingID, userA, userB uuid.UUID) ([]domain.Message, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Message, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, listing_id, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		message.ID, message.ListingID, message.SenderID, message.RecipientID, message.Content,
	).Scan(&message.CreatedAt)
}

const messageSelect = `
	SELECT
		m.id, m.listing_id, m.sender_id, m.recipient_id, m.content, m.created_at,
		s.id, s.full_name, s.avatar_url,
		r.id, r.full_name, r.avatar_url,
		l.id, l.title, l.images
	FROM messages m
	INNER JOIN users s ON m.sender_id = s.id
	INNER JOIN users r ON m.recipient_id = r.id
	INNER JOIN listings l ON m.listing_id = l.id`

// ListConversation returns the messages exchanged between the two
// users about one listing, in either direction, oldest first.
func (r *messageRepository) ListConversation(ctx context.Context, listingID, userA, userB uuid.UUID) ([]domain.Message, error) {
	query := messageSelect + `
	WHERE m.listing_id = $1
		AND ((m.sender_id = $2 AND m.recipient_id = $3) OR (m.sender_id = $3 AND m.recipient_id = $2))
	ORDER BY m.created_at ASC`

	return r.queryMessages(ctx, query, listingID, userA, userB)
}

// ListByParticipant returns every message the user sent or received,
// newest first. Thread grouping happens in the service.
func (r *messageRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]domain.Message, error) {
	query := messageSelect + `
	WHERE m.sender_id = $1 OR m.recipient_id = $1
	ORDER BY m.created_at DESC`

	return r.queryMessages(ctx, query, userID)
}

func (r *messageRepository) queryMessages(ctx context.Context, query string, args ...interface{}) ([]domain.Message, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var sender, recipient domain.UserRef
		var listing domain.ListingSummary

		err := rows.Scan(
			&m.ID, &m.ListingID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt,
			&sender.ID, &sender.FullName, &sender.AvatarURL,
			&recipient.ID, &recipient.FullName, &recipient.AvatarURL,
			&listing.ID, &listing.Title, &listing.Images,
		)
		if err != nil {
			return nil, err
		}

		m.Sender = &sender
		m.Recipient = &recipient
		m.Listing = &listing
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
