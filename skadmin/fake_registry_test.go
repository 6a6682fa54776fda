package skadmin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"skconsole/config"
)

type fakeSubject struct {
	compatibility CompatibilityType
	schemaType    SchemaType
	schemas       map[int]string
}

// fakeRegistry is a small in-memory implementation of the registry HTTP API.
type fakeRegistry struct {
	mu            sync.Mutex
	subjects      map[string]*fakeSubject
	order         []string
	schemasById   map[int]string
	nextId        int
	global        CompatibilityType
	requests      []*http.Request
	lastBody      map[string]any
	compatibleFor map[string]bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		subjects:      map[string]*fakeSubject{},
		schemasById:   map[int]string{},
		nextId:        1,
		global:        CompatibilityBackward,
		compatibleFor: map[string]bool{},
	}
}

func (f *fakeRegistry) add(subject string, schemas ...string) {
	s := &fakeSubject{
		compatibility: CompatibilityBackward,
		schemaType:    Avro,
		schemas:       map[int]string{},
	}
	for i, schema := range schemas {
		s.schemas[i+1] = schema
		f.schemasById[f.nextId] = schema
		f.nextId++
	}
	f.subjects[subject] = s
	f.order = append(f.order, subject)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeRegistry) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/subjects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, f.order)
	})

	mux.HandleFunc("GET /v1/subjects/{subject}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("subject")
		s, ok := f.subjects[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "subject " + name + " not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"subject":           name,
			"versions":          f.versions(s),
			"compatibilityType": s.compatibility,
			"schemaType":        s.schemaType,
		})
	})

	mux.HandleFunc("GET /v1/subjects/{subject}/versions", func(w http.ResponseWriter, r *http.Request) {
		s, ok := f.subjects[r.PathValue("subject")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, f.versions(s))
	})

	mux.HandleFunc("GET /v1/subjects/{subject}/versions/{version}", func(w http.ResponseWriter, r *http.Request) {
		name, schema, version, ok := f.lookup(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"subject":    name,
			"id":         version * 10,
			"version":    version,
			"schemaText": schema,
		})
	})

	mux.HandleFunc("GET /v1/subjects/{subject}/versions/{version}/schema", func(w http.ResponseWriter, r *http.Request) {
		_, schema, _, ok := f.lookup(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"schemaText": schema})
	})

	mux.HandleFunc("GET /v1/schema/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		schema, ok := f.schemasById[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"schemaText": schema})
	})

	mux.HandleFunc("DELETE /v1/subjects/{subject}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("subject")
		if _, ok := f.subjects[name]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		delete(f.subjects, name)
		f.order = slices.DeleteFunc(f.order, func(s string) bool { return s == name })
		writeJSON(w, http.StatusOK, true)
	})

	mux.HandleFunc("DELETE /v1/subjects/{subject}/versions/{version}", func(w http.ResponseWriter, r *http.Request) {
		name, _, version, ok := f.lookup(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		delete(f.subjects[name].schemas, version)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /v1/subjects/versions/{subject}", func(w http.ResponseWriter, r *http.Request) {
		body := f.decode(r)
		s, ok := f.subjects[r.PathValue("subject")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		schema, _ := body["schema"].(string)
		s.schemas[len(s.schemas)+1] = schema
		id := f.nextId
		f.schemasById[id] = schema
		f.nextId++
		writeJSON(w, http.StatusOK, map[string]int{"id": id})
	})

	mux.HandleFunc("POST /v1/subjects/{subject}", func(w http.ResponseWriter, r *http.Request) {
		body := f.decode(r)
		name := r.PathValue("subject")
		if _, exists := f.subjects[name]; exists {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "subject " + name + " already exists"})
			return
		}
		schema, _ := body["schema"].(string)
		f.add(name, schema)
		f.subjects[name].compatibility = ParseCompatibilityType(body["compatibilityType"].(string))
		writeJSON(w, http.StatusOK, map[string]int{"id": f.nextId - 1})
	})

	compatibility := func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("subject")
		if schema := r.URL.Query().Get("schema"); schema != "" {
			writeJSON(w, http.StatusOK, map[string]bool{"isCompatible": f.compatibleFor[schema]})
			return
		}
		if name == "" {
			writeJSON(w, http.StatusOK, compatibilityConfig{f.global})
			return
		}
		s, ok := f.subjects[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, compatibilityConfig{s.compatibility})
	}
	mux.HandleFunc("GET /v1/compatibility", compatibility)
	mux.HandleFunc("GET /v1/compatibility/{subject}", compatibility)

	updateCompatibility := func(w http.ResponseWriter, r *http.Request) {
		body := f.decode(r)
		c := CompatibilityType(body["compatibilityType"].(string))
		name := r.PathValue("subject")
		if name == "" {
			f.global = c
		} else if s, ok := f.subjects[name]; ok {
			s.compatibility = c
		} else {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, compatibilityConfig{c})
	}
	mux.HandleFunc("PUT /v1/compatibility", updateCompatibility)
	mux.HandleFunc("PUT /v1/compatibility/{subject}", updateCompatibility)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, r)
		mux.ServeHTTP(w, r)
	})
}

func (f *fakeRegistry) versions(s *fakeSubject) []int {
	versions := make([]int, 0, len(s.schemas))
	for v := range s.schemas {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions
}

func (f *fakeRegistry) lookup(r *http.Request) (string, string, int, bool) {
	name := r.PathValue("subject")
	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil {
		return "", "", 0, false
	}
	s, ok := f.subjects[name]
	if !ok {
		return "", "", 0, false
	}
	schema, ok := s.schemas[version]
	return name, schema, version, ok
}

func (f *fakeRegistry) decode(r *http.Request) map[string]any {
	body := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.lastBody = body
	return body
}

func (f *fakeRegistry) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func startFakeRegistry(t *testing.T) (*fakeRegistry, *DefaultSkClient) {
	t.Helper()
	registry := newFakeRegistry()
	server := httptest.NewServer(registry.handler())
	t.Cleanup(server.Close)

	client, err := New(&config.RegistryConfig{Name: "test", Url: server.URL + "/"})
	if err != nil {
		t.Fatalf("unable to create client: %v", err)
	}
	return registry, client
}

func await(t *testing.T, msg tea.Msg) tea.Msg {
	t.Helper()
	awaiter, ok := msg.(interface{ AwaitCompletion() tea.Msg })
	if !ok {
		t.Fatalf("%T does not await completion", msg)
	}
	return awaiter.AwaitCompletion()
}

