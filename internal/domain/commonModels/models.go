package commonModels

import "time"

type DocType string

var PDF DocType = "PDF"
var ERR DocType = "ERROR"

// Document is created once per upload and never mutated afterwards.
type Document struct {
	Id          string       `json:"id"`
	Name        string       `json:"doc_name"`
	RawBytes    []byte       `json:"-"`
	Text        string       `json:"-"`
	Info        DocumentInfo `json:"info"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	ContentType DocType      `json:"contentType"`
}

type DocumentInfo struct {
	NumPages     int    `json:"num_pages"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Subject      string `json:"subject,omitempty"`
	Creator      string `json:"creator,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	TextLength   int    `json:"text_length"`
}
