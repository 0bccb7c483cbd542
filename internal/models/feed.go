package models

// FeedPage is one page of the community feed. NextCursor is nil on the last page.
type FeedPage struct {
	Data       []Post  `json:"data"`
	NextCursor *string `json:"nextCursor"`
}
