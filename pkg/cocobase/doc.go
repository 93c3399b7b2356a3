// Package cocobase is a client for the Cocobase document-store backend.
//
// # Overview
//
// A Client wraps the backend's REST API: document CRUD on named
// collections, account login and signup, the current user, file upload and
// realtime change subscriptions. Every REST call goes through one request
// path which adds the x-api-key and bearer token headers and turns non-2xx
// responses into *HTTPError.
//
// # Usage
//
//	client, err := cocobase.New(&cocobase.Config{
//	    APIKey:  os.Getenv("COCOBASE_API_KEY"),
//	    Storage: storage.NewMemoryBackend(),
//	})
//	if err != nil {
//	    return err
//	}
//
//	if err := client.Login(ctx, "me@example.com", "secret"); err != nil {
//	    return err
//	}
//
//	doc, err := client.CreateDocument(ctx, "posts", models.Data{"title": "hello"})
//	if errors.Is(err, cocobase.ErrUnauthorized) {
//	    // bad API key
//	}
//
// Typed payloads use the generic helpers:
//
//	type Post struct {
//	    Title string `json:"title"`
//	}
//	post, err := cocobase.GetDocumentAs[Post](ctx, client, "posts", doc.ID)
//
// # Sessions
//
// The token and user are persisted through the configured storage.Backend
// under "cocobase-token" and "cocobase-user". Storage is best-effort:
// failures are logged and never returned. InitAuth restores a persisted
// session; Logout only drops the in-memory token.
//
// # Errors
//
//   - *HTTPError for non-2xx responses; errors.Is matches ErrNotFound,
//     ErrUnauthorized, ErrForbidden, ErrMethodNotAllowed and ErrRateLimited
//   - *TransportError when a request could not be sent or decoded
//   - ErrUnauthenticated when an operation needs a token and there is none
//   - *UploadError for rejected uploads
//
// No request is retried.
package cocobase
