package domain

import "time"

// Headline is a single unit of ticker content supplied by the host.
// The scheduler never interprets Text or URL; they are carried through to
// dispatch events and activation callbacks untouched.
type Headline struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHeadline(id, text, url string) Headline {
	return Headline{
		ID:        id,
		Text:      text,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
}
