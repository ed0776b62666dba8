package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Reader lists and fetches records.
type Reader[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
}

// ReadDeleter is the surface of read-only resources that may still be
// deleted, such as contact messages.
type ReadDeleter[T any] interface {
	Reader[T]
	Delete(ctx context.Context, id int64) (Ack, error)
}

// Repository is the full CRUD surface of one resource.
type Repository[T any] interface {
	ReadDeleter[T]
	Create(ctx context.Context, form *Form) (Ack, error)
	Update(ctx context.Context, id int64, form *Form) (Ack, error)
}

// Resource binds a record type to its collection path.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource returns the typed operations for the collection at path.
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: "/" + strings.Trim(path, "/")}
}

// Path returns the collection path, e.g. "/services".
func (r *Resource[T]) Path() string {
	return r.path
}

// List performs GET /{resource}.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	env, err := Do[[]T](ctx, r.client, Request{Method: http.MethodGet, Path: r.path})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.path, err)
	}
	return env.Data, nil
}

// Get performs GET /{resource}/{id}.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	env, err := Do[T](ctx, r.client, Request{Method: http.MethodGet, Path: r.itemPath(id)})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s: %w", r.itemPath(id), err)
	}
	return env.Data, nil
}

// Create performs POST /{resource} with a multipart body.
func (r *Resource[T]) Create(ctx context.Context, form *Form) (Ack, error) {
	return r.write(ctx, r.path, nil, form)
}

// Update performs POST /{resource}/{id}?_method=PATCH with a multipart body.
func (r *Resource[T]) Update(ctx context.Context, id int64, form *Form) (Ack, error) {
	return r.write(ctx, r.itemPath(id), url.Values{"_method": {http.MethodPatch}}, form)
}

// Delete performs DELETE /{resource}/{id}.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (Ack, error) {
	ack, err := Do[json.RawMessage](ctx, r.client, Request{Method: http.MethodDelete, Path: r.itemPath(id)})
	if err != nil {
		return Ack{}, fmt.Errorf("delete %s: %w", r.itemPath(id), err)
	}
	return ack, nil
}

func (r *Resource[T]) write(ctx context.Context, path string, query url.Values, form *Form) (Ack, error) {
	if form == nil {
		form = NewForm()
	}
	body, contentType, err := form.Encode()
	if err != nil {
		return Ack{}, fmt.Errorf("encode %s form: %w", path, err)
	}
	ack, err := Do[json.RawMessage](ctx, r.client, Request{
		Method:      http.MethodPost,
		Path:        path,
		Query:       query,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return Ack{}, fmt.Errorf("write %s: %w", path, err)
	}
	return ack, nil
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}
