package domain

import "time"

// BlogPost is a content post with its rendered fields flattened and the
// embedded featured media resolved to a URL.
type BlogPost struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Date          time.Time `json:"date"`
	FeaturedMedia string    `json:"featured_media_url,omitempty"`
	MediaAlt      string    `json:"featured_media_alt,omitempty"`
}
