package model

// ArticleData is the payload of a successful extract-article call.
// Content is the field fed into the analysis pipeline as raw input text.
type ArticleData struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Length        int     `json:"length"`
	Excerpt       string  `json:"excerpt"`
	SiteName      string  `json:"siteName,omitempty"`
	Byline        string  `json:"byline,omitempty"`
	PublishedTime string  `json:"publishedTime,omitempty"`
	PublishDate   *string `json:"publishDate"`
	Author        *string `json:"author"`
}
