package cocobase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cocobase/cocobase-go/pkg/models"
	"github.com/cocobase/cocobase-go/pkg/query"
)

func documentPath(collection, id string) string {
	return fmt.Sprintf("/collections/%s/documents/%s", url.PathEscape(collection), url.PathEscape(id))
}

// GetDocument fetches one document.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (*models.Document[models.Data], error) {
	return GetDocumentAs[models.Data](ctx, c, collection, id)
}

// CreateDocument stores data as a new document in collection. A nil data
// sends the request without a body.
func (c *Client) CreateDocument(ctx context.Context, collection string, data models.Data) (*models.Document[models.Data], error) {
	return CreateDocumentAs(ctx, c, collection, data)
}

// UpdateDocument sends partial to the backend unmodified and returns the
// updated document. Merge semantics are up to the server.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, partial models.Data) (*models.Document[models.Data], error) {
	return UpdateDocumentAs[models.Data](ctx, c, collection, id, partial)
}

// DeleteDocument removes one document.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) (*models.DeleteResult, error) {
	var result models.DeleteResult
	if err := c.request(ctx, http.MethodDelete, documentPath(collection, id), nil, envelopeBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListDocuments returns the documents of collection matching q. A nil q
// lists with the default limit and offset.
func (c *Client) ListDocuments(ctx context.Context, collection string, q *models.Query) ([]models.Document[models.Data], error) {
	return ListDocumentsAs[models.Data](ctx, c, collection, q)
}

// GetDocumentAs is GetDocument with the payload decoded into T.
func GetDocumentAs[T any](ctx context.Context, c *Client, collection, id string) (*models.Document[T], error) {
	var doc models.Document[T]
	if err := c.request(ctx, http.MethodGet, documentPath(collection, id), nil, envelopeBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocumentAs is CreateDocument with a typed payload.
func CreateDocumentAs[T any](ctx context.Context, c *Client, collection string, data T) (*models.Document[T], error) {
	path := "/collections/documents?collection=" + url.QueryEscape(collection)

	var doc models.Document[T]
	if err := c.request(ctx, http.MethodPost, path, data, envelopeBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocumentAs is UpdateDocument with the result decoded into T.
// partial is usually a map or a struct with omitempty fields.
func UpdateDocumentAs[T any](ctx context.Context, c *Client, collection, id string, partial any) (*models.Document[T], error) {
	var doc models.Document[T]
	if err := c.request(ctx, http.MethodPatch, documentPath(collection, id), partial, envelopeBody, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocumentsAs is ListDocuments with payloads decoded into T.
func ListDocumentsAs[T any](ctx context.Context, c *Client, collection string, q *models.Query) ([]models.Document[T], error) {
	path := fmt.Sprintf("/collections/%s/documents?%s", url.PathEscape(collection), query.BuildFilterQuery(q))

	var docs []models.Document[T]
	if err := c.request(ctx, http.MethodGet, path, nil, envelopeBody, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
