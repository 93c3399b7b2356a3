package models

// Data is an untyped document payload as decoded from JSON.
type Data = map[string]any

// Collection is the descriptive metadata the backend embeds in every document.
type Collection struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// Document is a server snapshot of a stored record. T is the shape of the
// payload; no schema validation is done on decode.
type Document[T any] struct {
	Data         T          `json:"data"`
	ID           string     `json:"id"`
	CollectionID string     `json:"collection_id"`
	CreatedAt    string     `json:"created_at"`
	Collection   Collection `json:"collection"`
}

// DeleteResult is returned by the document delete endpoint.
type DeleteResult struct {
	Success bool `json:"success"`
}

// UploadResult is the decoded body returned by the file upload endpoint.
type UploadResult = map[string]any
