package cocobase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/cocobase/cocobase-go/pkg/models"
)

const testAPIKey = "test-api-key"

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// fakeBackend is an in-memory stand-in for the Cocobase REST API.
type fakeBackend struct {
	*httptest.Server

	mu         sync.Mutex
	docs       map[string]map[string]*models.Document[models.Data]
	nextID     int
	users      map[string]*models.AppUser // by email
	passwds    map[string]string
	tokens     map[string]string // token -> email
	requests   []recordedRequest
	authFrames []string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	f := &fakeBackend{
		docs:    make(map[string]map[string]*models.Document[models.Data]),
		users:   make(map[string]*models.AppUser),
		passwds: make(map[string]string),
		tokens:  make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /collections/documents", f.createDocument)
	mux.HandleFunc("GET /collections/{collection}/documents", f.listDocuments)
	mux.HandleFunc("GET /collections/{collection}/documents/{id}", f.getDocument)
	mux.HandleFunc("PATCH /collections/{collection}/documents/{id}", f.updateDocument)
	mux.HandleFunc("DELETE /collections/{collection}/documents/{id}", f.deleteDocument)
	mux.HandleFunc("POST /auth-collections/login", f.login)
	mux.HandleFunc("POST /auth-collections/signup", f.signup)
	mux.HandleFunc("GET /auth-collections/user", f.getUser)
	mux.HandleFunc("PATCH /auth-collections/user", f.updateUser)
	mux.HandleFunc("POST /files/upload-file", f.uploadFile)
	mux.HandleFunc("GET /realtime/collections/{collection}", f.realtime)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		f.mu.Unlock()

		if r.URL.Path != "/files/upload-file" && !strings.HasPrefix(r.URL.Path, "/realtime/") &&
			r.Header.Get("x-api-key") != testAPIKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid api key"})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

// addUser registers an account directly.
func (f *fakeBackend) addUser(email, password string, data map[string]any) *models.AppUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.AppUser{
		ID:        fmt.Sprintf("user-%d", len(f.users)+1),
		Email:     email,
		CreatedAt: "2024-01-01T00:00:00Z",
		Data:      data,
		ClientID:  "client-1",
	}
	f.users[email] = user
	f.passwds[email] = password
	return user
}

func (f *fakeBackend) lastRequest() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeBackend) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Document not found"})
}

func decodeEnvelope(r *http.Request) (models.Data, error) {
	var body struct {
		Data models.Data `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (f *fakeBackend) createDocument(w http.ResponseWriter, r *http.Request) {
	collection := r.URL.Query().Get("collection")
	data, err := decodeEnvelope(r)
	if err != nil || collection == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	doc := &models.Document[models.Data]{
		Data:         data,
		ID:           fmt.Sprintf("doc-%d", f.nextID),
		CollectionID: "col-" + collection,
		CreatedAt:    "2024-01-01T00:00:00Z",
		Collection: models.Collection{
			Name:      collection,
			ID:        "col-" + collection,
			CreatedAt: "2024-01-01T00:00:00Z",
		},
	}
	if f.docs[collection] == nil {
		f.docs[collection] = make(map[string]*models.Document[models.Data])
	}
	f.docs[collection][doc.ID] = doc
	writeJSON(w, http.StatusOK, doc)
}

func (f *fakeBackend) getDocument(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[r.PathValue("collection")][r.PathValue("id")]
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (f *fakeBackend) listDocuments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := make([]*models.Document[models.Data], 0)
	for _, doc := range f.docs[r.PathValue("collection")] {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	writeJSON(w, http.StatusOK, docs)
}

func (f *fakeBackend) updateDocument(w http.ResponseWriter, r *http.Request) {
	partial, err := decodeEnvelope(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[r.PathValue("collection")][r.PathValue("id")]
	if !ok {
		notFound(w)
		return
	}
	for k, v := range partial {
		doc.Data[k] = v
	}
	writeJSON(w, http.StatusOK, doc)
}

func (f *fakeBackend) deleteDocument(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	collection, id := r.PathValue("collection"), r.PathValue("id")
	if _, ok := f.docs[collection][id]; !ok {
		notFound(w)
		return
	}
	delete(f.docs[collection], id)
	writeJSON(w, http.StatusOK, models.DeleteResult{Success: true})
}

func (f *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.passwds[creds.Email]; !ok || pw != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
		return
	}
	token := "token-" + creds.Email
	f.tokens[token] = creds.Email
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token})
}

func (f *fakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	f.mu.Lock()
	_, exists := f.users[creds.Email]
	f.mu.Unlock()
	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "user exists"})
		return
	}

	f.addUser(creds.Email, creds.Password, creds.Data)

	f.mu.Lock()
	defer f.mu.Unlock()
	token := "token-" + creds.Email
	f.tokens[token] = creds.Email
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token})
}

func (f *fakeBackend) currentUser(r *http.Request) *models.AppUser {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	email, ok := f.tokens[token]
	if !ok {
		return nil
	}
	return f.users[email]
}

func (f *fakeBackend) getUser(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.currentUser(r)
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *fakeBackend) updateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data     map[string]any `json:"data"`
		Email    *string        `json:"email"`
		Password *string        `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.currentUser(r)
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid token"})
		return
	}
	if body.Data != nil {
		user.Data = body.Data
	}
	if body.Email != nil {
		user.Email = *body.Email
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *fakeBackend) uploadFile(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-api-key") != testAPIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "invalid api key"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "missing file"})
		return
	}
	defer file.Close()
	content, _ := io.ReadAll(file)
	writeJSON(w, http.StatusOK, map[string]any{
		"url":  "https://files.example.com/" + header.Filename,
		"size": len(content),
	})
}

func (f *fakeBackend) realtime(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	_, frame, err := ws.ReadMessage()
	if err != nil {
		return
	}
	f.mu.Lock()
	f.authFrames = append(f.authFrames, string(frame))
	f.mu.Unlock()

	_ = ws.WriteJSON(map[string]any{
		"event": "create",
		"data": map[string]any{
			"id":   "doc-live",
			"data": map[string]any{"title": "live"},
		},
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// newRawServer answers every request with status and body.
func newRawServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// requestsTo returns the recorded requests for path in order.
func (f *fakeBackend) requestsTo(method, path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

type routeResponse struct {
	Status int
	Body   string
}

// newRouteServer answers "METHOD /path" keys with fixed responses and 404
// otherwise.
func newRouteServer(t *testing.T, routes map[string]routeResponse) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_, _ = io.WriteString(w, resp.Body)
	}))
	t.Cleanup(srv.Close)
	return srv
}
