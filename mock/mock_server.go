/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory document store emulator for testing
// the docstore client without a live account.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Server emulates the subset of the document store REST surface the
// client exercises: database/container CRUD and feeds, item CRUD,
// single-partition queries and continuation-token paging. Query text is
// treated as opaque, exactly as the client treats it: a query returns
// every document in the addressed partition.
type Server struct {
	httpServer *httptest.Server
	requests   int64

	// continuationFailure, when nonzero, fails every request that
	// carries a continuation token with that status.
	continuationFailure int64

	mu      sync.RWMutex
	dbOrder []string
	dbs     map[string]*database
}

type database struct {
	props     map[string]any
	collOrder []string
	colls     map[string]*collection
}

type collection struct {
	props    map[string]any
	docOrder []docKey
	docs     map[docKey]*document
}

type docKey struct {
	partition string
	id        string
}

type document struct {
	body map[string]any
	etag string
}

// NewServer starts an emulator.
func NewServer() *Server {
	s := &Server{dbs: make(map[string]*database)}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the emulator's endpoint.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the emulator down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// RequestCount returns how many requests the emulator has served.
func (s *Server) RequestCount() int64 {
	return atomic.LoadInt64(&s.requests)
}

// FailContinuations makes every request carrying a continuation token
// fail with the given status, so tests can break a feed mid-stream
// after its first page. A zero status restores normal behavior.
func (s *Server) FailContinuations(status int) {
	atomic.StoreInt64(&s.continuationFailure, int64(status))
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&s.requests, 1)

	w.Header().Set("x-ms-activity-id", uuid.NewString())
	w.Header().Set("x-ms-request-charge", "1")

	if status := atomic.LoadInt64(&s.continuationFailure); status != 0 && r.Header.Get("x-ms-continuation") != "" {
		writeError(w, int(status), http.StatusText(int(status)), "continuation rejected")
		return
	}

	parts := splitPath(r.URL.Path)
	switch {
	case len(parts) == 1 && parts[0] == "dbs":
		s.handleDatabaseFeed(w, r)
	case len(parts) == 2 && parts[0] == "dbs":
		s.handleDatabase(w, r, parts[1])
	case len(parts) == 3 && parts[2] == "colls":
		s.handleContainerFeed(w, r, parts[1])
	case len(parts) == 4 && parts[2] == "colls":
		s.handleContainer(w, r, parts[1], parts[3])
	case len(parts) == 5 && parts[4] == "docs":
		s.handleDocumentFeed(w, r, parts[1], parts[3])
	case len(parts) == 6 && parts[4] == "docs":
		s.handleDocument(w, r, parts[1], parts[3], parts[5])
	default:
		writeError(w, http.StatusBadRequest, "BadRequest", fmt.Sprintf("unrecognized path %q", r.URL.Path))
	}
}

func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

func (s *Server) handleDatabaseFeed(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "BadRequest", "malformed body")
			return
		}
		id, _ := body["id"].(string)
		if id == "" {
			writeError(w, http.StatusBadRequest, "BadRequest", "database id is required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if _, exists := s.dbs[id]; exists {
			writeError(w, http.StatusConflict, "Conflict", fmt.Sprintf("database %q already exists", id))
			return
		}
		props := stampResource(map[string]any{"id": id}, uuid.NewString())
		s.dbs[id] = &database{props: props, colls: make(map[string]*collection)}
		s.dbOrder = append(s.dbOrder, id)
		writeJSON(w, http.StatusCreated, props)

	case http.MethodGet:
		s.mu.RLock()
		items := make([]any, 0, len(s.dbOrder))
		for _, id := range s.dbOrder {
			items = append(items, s.dbs[id].props)
		}
		s.mu.RUnlock()
		writeFeed(w, r, "Databases", items)

	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request, dbID string) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		db, ok := s.dbs[dbID]
		s.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("database %q not found", dbID))
			return
		}
		writeJSON(w, http.StatusOK, db.props)

	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.dbs[dbID]; !ok {
			writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("database %q not found", dbID))
			return
		}
		delete(s.dbs, dbID)
		s.dbOrder = remove(s.dbOrder, dbID)
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleContainerFeed(w http.ResponseWriter, r *http.Request, dbID string) {
	s.mu.Lock()
	db, ok := s.dbs[dbID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("database %q not found", dbID))
		return
	}

	switch r.Method {
	case http.MethodPost:
		defer s.mu.Unlock()
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "BadRequest", "malformed body")
			return
		}
		id, _ := body["id"].(string)
		if id == "" {
			writeError(w, http.StatusBadRequest, "BadRequest", "container id is required")
			return
		}
		if _, exists := db.colls[id]; exists {
			writeError(w, http.StatusConflict, "Conflict", fmt.Sprintf("container %q already exists", id))
			return
		}
		props := stampResource(body, uuid.NewString())
		db.colls[id] = &collection{props: props, docs: make(map[docKey]*document)}
		db.collOrder = append(db.collOrder, id)
		writeJSON(w, http.StatusCreated, props)

	case http.MethodGet:
		items := make([]any, 0, len(db.collOrder))
		for _, id := range db.collOrder {
			items = append(items, db.colls[id].props)
		}
		s.mu.Unlock()
		writeFeed(w, r, "DocumentCollections", items)

	default:
		s.mu.Unlock()
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleContainer(w http.ResponseWriter, r *http.Request, dbID, collID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.dbs[dbID]
	if !ok {
		writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("database %q not found", dbID))
		return
	}
	coll, ok := db.colls[collID]
	if !ok {
		writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("container %q not found", collID))
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, coll.props)
	case http.MethodDelete:
		delete(db.colls, collID)
		db.collOrder = remove(db.collOrder, collID)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleDocumentFeed(w http.ResponseWriter, r *http.Request, dbID, collID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
		return
	}

	partition := r.Header.Get("x-ms-documentdb-partitionkey")
	if partition == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "partition key header is required")
		return
	}

	if strings.EqualFold(r.Header.Get("x-ms-documentdb-isquery"), "true") {
		s.handleQuery(w, r, dbID, collID, partition)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookupCollection(dbID, collID)
	if !ok {
		writeError(w, http.StatusNotFound, "NotFound", "container not found")
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "malformed body")
		return
	}
	id, _ := body["id"].(string)
	if id == "" {
		writeError(w, http.StatusBadRequest, "BadRequest", "document id is required")
		return
	}

	key := docKey{partition: partition, id: id}
	upsert := strings.EqualFold(r.Header.Get("x-ms-documentdb-is-upsert"), "true")
	_, exists := coll.docs[key]
	if exists && !upsert {
		writeError(w, http.StatusConflict, "Conflict", fmt.Sprintf("document %q already exists", id))
		return
	}

	etag := uuid.NewString()
	doc := &document{body: stampResource(body, etag), etag: etag}
	coll.docs[key] = doc
	if !exists {
		coll.docOrder = append(coll.docOrder, key)
	}

	status := http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	writeDocument(w, r, status, doc)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request, dbID, collID, partition string) {
	s.mu.RLock()
	coll, ok := s.lookupCollection(dbID, collID)
	if !ok {
		s.mu.RUnlock()
		writeError(w, http.StatusNotFound, "NotFound", "container not found")
		return
	}

	items := make([]any, 0)
	for _, key := range coll.docOrder {
		if key.partition == partition {
			items = append(items, coll.docs[key].body)
		}
	}
	s.mu.RUnlock()

	writeFeed(w, r, "Documents", items)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request, dbID, collID, docID string) {
	partition := r.Header.Get("x-ms-documentdb-partitionkey")

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookupCollection(dbID, collID)
	if !ok {
		writeError(w, http.StatusNotFound, "NotFound", "container not found")
		return
	}

	key := docKey{partition: partition, id: docID}
	doc, exists := coll.docs[key]
	if !exists {
		writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("document %q not found", docID))
		return
	}

	if match := r.Header.Get("If-Match"); match != "" && match != doc.etag {
		writeError(w, http.StatusPreconditionFailed, "PreconditionFailed", "etag mismatch")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeDocument(w, r, http.StatusOK, doc)

	case http.MethodPut:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "BadRequest", "malformed body")
			return
		}
		etag := uuid.NewString()
		replaced := &document{body: stampResource(body, etag), etag: etag}
		coll.docs[key] = replaced
		writeDocument(w, r, http.StatusOK, replaced)

	case http.MethodDelete:
		delete(coll.docs, key)
		coll.docOrder = removeKey(coll.docOrder, key)
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

// lookupCollection must be called with s.mu held.
func (s *Server) lookupCollection(dbID, collID string) (*collection, bool) {
	db, ok := s.dbs[dbID]
	if !ok {
		return nil, false
	}
	coll, ok := db.colls[collID]
	return coll, ok
}

// writeFeed pages items through the continuation-token protocol: the
// cursor is the integer offset of the next page, opaque to the client.
func writeFeed(w http.ResponseWriter, r *http.Request, payloadKey string, items []any) {
	start := 0
	if token := r.Header.Get("x-ms-continuation"); token != "" {
		if v, err := strconv.Atoi(token); err == nil {
			start = v
		}
	}
	end := len(items)
	if raw := r.Header.Get("x-ms-max-item-count"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && start+v < end {
			end = start + v
		}
	}
	if start > len(items) {
		start = len(items)
	}

	page := items[start:end]
	if end < len(items) {
		w.Header().Set("x-ms-continuation", strconv.Itoa(end))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		payloadKey: page,
		"_count":   len(page),
	})
}

func writeDocument(w http.ResponseWriter, r *http.Request, status int, doc *document) {
	w.Header().Set("ETag", doc.etag)
	if r.Header.Get("Prefer") == "return=minimal" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, doc.body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func stampResource(body map[string]any, etag string) map[string]any {
	stamped := make(map[string]any, len(body)+2)
	for k, v := range body {
		stamped[k] = v
	}
	stamped["_etag"] = etag
	stamped["_ts"] = time.Now().Unix()
	return stamped
}

func remove(order []string, id string) []string {
	out := order[:0]
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func removeKey(order []docKey, key docKey) []docKey {
	out := order[:0]
	for _, v := range order {
		if v != key {
			out = append(out, v)
		}
	}
	return out
}
