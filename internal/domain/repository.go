package domain

import "context"

// LetterRepository gives access to the wish letters on the varal.
type LetterRepository interface {
	List(ctx context.Context) ([]Letter, error)
	// Resolve locates a letter either by its store record id or by the
	// external letter code. Returns ErrNotFound when neither matches.
	Resolve(ctx context.Context, ref string) (*Letter, error)
	// MarkAdopted flips the letter to adotada. It refuses with
	// ErrLetterAdopted when the letter is no longer available.
	MarkAdopted(ctx context.Context, id string) error
}

// DonationRepository persists adoption pledges.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) (string, error)
}

// CollectionPointRepository lists drop-off locations.
type CollectionPointRepository interface {
	List(ctx context.Context) ([]CollectionPoint, error)
}

// EventRepository gives access to published events.
type EventRepository interface {
	ListHighlighted(ctx context.Context) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
}

// UserRepository persists and looks up accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) (string, error)
	// GetByEmail returns ErrNotFound when no account uses the address.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// KnowledgeBaseRepository lists the Cloudinho canned answers.
type KnowledgeBaseRepository interface {
	List(ctx context.Context) ([]KBEntry, error)
}
