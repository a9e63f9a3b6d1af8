// Package models defines the record kinds served by techhub.
package models

import "time"

// Kind names a record collection.
type Kind string

const (
	KindArticle  Kind = "article"
	KindIssue    Kind = "issue"
	KindDocument Kind = "document"
	KindEvent    Kind = "event"
)

// Kinds lists every collection in display order.
var Kinds = []Kind{KindArticle, KindIssue, KindDocument, KindEvent}

// Article is a technical article.
type Article struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    Content   `json:"content" yaml:"content"`
	Author     string    `json:"author" yaml:"author"`
	Tags       []string  `json:"tags" yaml:"tags"`
	CreateTime time.Time `json:"create_time" yaml:"create_time"`
	UpdateTime time.Time `json:"update_time" yaml:"update_time"`
	Views      int       `json:"views" yaml:"views"`
}

// Issue is a technical problem together with its solution.
type Issue struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Solution    string    `json:"solution" yaml:"solution"`
	Tags        []string  `json:"tags" yaml:"tags"`
	CreateTime  time.Time `json:"create_time" yaml:"create_time"`
	Status      Status    `json:"status" yaml:"status"`
	Priority    Priority  `json:"priority" yaml:"priority"`
}

// Document is an uploaded file entry. Size is in bytes.
type Document struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	FileURL     string    `json:"file_url" yaml:"file_url"`
	FileType    FileType  `json:"file_type" yaml:"file_type"`
	Size        int64     `json:"size" yaml:"size"`
	UploadTime  time.Time `json:"upload_time" yaml:"upload_time"`
	Category    string    `json:"category" yaml:"category"`
}

// Event is a timeline entry.
type Event struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Date        time.Time  `json:"date" yaml:"date"`
	Type        EventType  `json:"type" yaml:"type"`
	Importance  Importance `json:"importance" yaml:"importance"`
}
