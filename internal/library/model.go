package library

import "time"

// Kind classifies a reading item.
type Kind string

const (
	KindBook    Kind = "book"
	KindArticle Kind = "article"
	KindNews    Kind = "news"
)

// Item is one entry in the library snapshot.
type Item struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Author      string    `yaml:"author,omitempty"`
	Content     string    `yaml:"content"`
	Kind        Kind      `yaml:"kind"`
	DateAdded   time.Time `yaml:"date_added"`
	Description string    `yaml:"description,omitempty"`
	CoverImage  string    `yaml:"cover_image,omitempty"`
	SourceURL   string    `yaml:"source_url,omitempty"`
}
