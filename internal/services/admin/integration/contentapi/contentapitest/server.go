// Package contentapitest provides an in-memory content API for tests.
package contentapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Call records one request the fake received.
type Call struct {
	Method   string
	Path     string
	Override string
	Fields   map[string][]string
	Files    map[string][]string
}

// Server is a fake content API backed by maps.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	nextID  int64
	records map[string][]map[string]any
	calls   []Call
	fail    map[string]int
	delay   time.Duration
}

// NewServer starts a fake API. Close it with t.Cleanup(srv.Close).
func NewServer() *Server {
	s := &Server{
		nextID:  1,
		records: map[string][]map[string]any{},
		fail:    map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Seed stores records for a collection such as "categories", assigning ids
// to records without one.
func (s *Server) Seed(collection string, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		copyRecord := cloneRecord(record)
		if _, ok := copyRecord["id"]; !ok {
			copyRecord["id"] = s.nextID
			s.nextID++
		}
		s.records[collection] = append(s.records[collection], copyRecord)
	}
}

// Records returns a copy of a collection in storage order.
func (s *Server) Records(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.records[collection]))
	for _, record := range s.records[collection] {
		out = append(out, cloneRecord(record))
	}
	return out
}

// Calls returns every recorded request.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount counts requests matching method and path.
func (s *Server) CallCount(method, path string) int {
	n := 0
	for _, call := range s.Calls() {
		if call.Method == method && call.Path == path {
			n++
		}
	}
	return n
}

// FailWith makes every request to collection answer with status.
func (s *Server) FailWith(collection string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[collection] = status
}

// SetDelay slows every response down.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: r.Method, Path: r.URL.Path, Override: r.URL.Query().Get("_method")}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		call.Fields = r.MultipartForm.Value
		call.Files = map[string][]string{}
		for field, headers := range r.MultipartForm.File {
			for _, header := range headers {
				call.Files[field] = append(call.Files[field], header.Filename)
			}
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	delay := s.delay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	collection, id, hasID := splitPath(r.URL.Path)
	s.mu.Lock()
	status, failing := s.fail[collection]
	s.mu.Unlock()
	if failing {
		writeJSON(w, status, map[string]any{"data": nil, "message": "failure", "status": false})
		return
	}

	switch {
	case r.Method == http.MethodGet && !hasID:
		writeJSON(w, http.StatusOK, envelope(s.Records(collection)))
	case r.Method == http.MethodGet:
		record, ok := s.find(collection, id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"data": nil, "message": "not found", "status": false})
			return
		}
		writeJSON(w, http.StatusOK, envelope(record))
	case r.Method == http.MethodPost && !hasID:
		writeJSON(w, http.StatusCreated, envelope(s.create(collection, call)))
	case r.Method == http.MethodPost && strings.EqualFold(call.Override, http.MethodPatch):
		record, ok := s.update(collection, id, call)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"data": nil, "message": "not found", "status": false})
			return
		}
		writeJSON(w, http.StatusOK, envelope(record))
	case r.Method == http.MethodDelete && hasID:
		if !s.delete(collection, id) {
			writeJSON(w, http.StatusNotFound, map[string]any{"data": nil, "message": "not found", "status": false})
			return
		}
		writeJSON(w, http.StatusOK, envelope(nil))
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"data": nil, "message": "method not allowed", "status": false})
	}
}

func (s *Server) find(collection string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records[collection] {
		if recordID(record) == id {
			return cloneRecord(record), true
		}
	}
	return nil, false
}

func (s *Server) create(collection string, call Call) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Format(time.RFC3339)
	record := map[string]any{"id": s.nextID, "created_at": now, "updated_at": now}
	s.nextID++
	applyCall(record, call)
	s.records[collection] = append(s.records[collection], record)
	return cloneRecord(record)
}

func (s *Server) update(collection string, id int64, call Call) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records[collection] {
		if recordID(record) == id {
			applyCall(record, call)
			record["updated_at"] = time.Now().UTC().Format(time.RFC3339)
			return cloneRecord(record), true
		}
	}
	return nil, false
}

func (s *Server) delete(collection string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.records[collection]
	for i, record := range records {
		if recordID(record) == id {
			s.records[collection] = append(records[:i:i], records[i+1:]...)
			return true
		}
	}
	return false
}

func applyCall(record map[string]any, call Call) {
	keys := make([]string, 0, len(call.Fields))
	for key := range call.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		values := call.Fields[key]
		if len(values) == 0 {
			continue
		}
		if n, err := strconv.ParseInt(values[0], 10, 64); err == nil && (key == "category_id" || key == "num_star") {
			record[key] = n
			continue
		}
		record[key] = values[0]
	}
	for field, names := range call.Files {
		paths := make([]string, 0, len(names))
		for _, name := range names {
			paths = append(paths, "uploads/"+name)
		}
		if field == "images[]" {
			record["images"] = paths
			continue
		}
		record[field] = paths[0]
	}
}

func splitPath(path string) (string, int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return "", 0, false
	}
	last := parts[len(parts)-1]
	if id, err := strconv.ParseInt(last, 10, 64); err == nil && len(parts) >= 2 {
		return parts[len(parts)-2], id, true
	}
	return last, 0, false
}

func recordID(record map[string]any) int64 {
	switch v := record["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func cloneRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for key, value := range record {
		out[key] = value
	}
	return out
}

func envelope(data any) map[string]any {
	return map[string]any{"data": data, "message": "ok", "status": true}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
