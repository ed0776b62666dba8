package contentapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi/contentapitest"
)

func newAPI(t *testing.T) (*contentapi.API, *contentapitest.Server) {
	t.Helper()
	srv := contentapitest.NewServer()
	t.Cleanup(srv.Close)
	client, err := contentapi.NewClient(srv.URL, contentapi.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return contentapi.NewAPI(client), srv
}

func TestResourceCreateAddsExactlyOneRecord(t *testing.T) {
	t.Parallel()

	api, srv := newAPI(t)
	srv.Seed("categories", map[string]any{"name_en": "Offices", "name_ar": "مكاتب", "desc_en": "d", "desc_ar": "و"})

	before, err := api.Categories.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	form := contentapi.NewForm().
		Set("name_en", "Kitchens").
		Set("name_ar", "مطابخ").
		Set("desc_en", "Modern kitchens").
		Set("desc_ar", "مطابخ حديثة")
	if _, err := api.Categories.Create(context.Background(), form); err != nil {
		t.Fatalf("create: %v", err)
	}
	after, err := api.Categories.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("len(after) = %d, want %d", len(after), len(before)+1)
	}
	last := after[len(after)-1]
	if last.NameEN != "Kitchens" || last.NameAR != "مطابخ" || last.RecordID() == 0 {
		t.Fatalf("created = %+v", last)
	}
	if last.CreatedAt == "" {
		t.Fatal("expected server-assigned created_at")
	}
}

func TestResourceUpdateUsesMethodOverride(t *testing.T) {
	t.Parallel()

	api, srv := newAPI(t)
	srv.Seed("services", map[string]any{"id": 7, "name_en": "Design", "name_ar": "تصميم"})

	if _, err := api.Services.Update(context.Background(), 7, contentapi.NewForm().Set("name_en", "Interior design")); err != nil {
		t.Fatalf("update: %v", err)
	}
	calls := srv.Calls()
	last := calls[len(calls)-1]
	if last.Method != http.MethodPost || last.Path != "/services/7" || last.Override != "PATCH" {
		t.Fatalf("update call = %+v", last)
	}
	got, err := api.Services.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.NameEN != "Interior design" || got.NameAR != "تصميم" {
		t.Fatalf("updated = %+v", got)
	}
}

func TestResourceDeleteRemovesOnlyThatRecord(t *testing.T) {
	t.Parallel()

	api, srv := newAPI(t)
	srv.Seed("news",
		map[string]any{"id": 1, "title_en": "One"},
		map[string]any{"id": 2, "title_en": "Two"},
		map[string]any{"id": 3, "title_en": "Three"},
	)

	if _, err := api.News.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err := api.News.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].RecordID() != 1 || items[1].RecordID() != 3 {
		t.Fatalf("remaining = %+v", items)
	}
}

func TestResourceGetMissingIsNotFound(t *testing.T) {
	t.Parallel()

	api, _ := newAPI(t)
	_, err := api.Contact.Get(context.Background(), 99)
	if got := apperrors.CodeOf(err); got != apperrors.CodeNotFound {
		t.Fatalf("code = %q, want %q (err %v)", got, apperrors.CodeNotFound, err)
	}
}

func TestProjectCreateSendsFilesAndQuotedIntegers(t *testing.T) {
	t.Parallel()

	api, srv := newAPI(t)
	form := contentapi.NewForm().
		Set("category_id", "3").
		Set("title_en", "Villa").
		Set("title_ar", "فيلا").
		Set("video", "").
		AddFile(memoryFile("cover", "cover.jpg", "c")).
		AddFile(memoryFile("images[]", "a.jpg", "a")).
		AddFile(memoryFile("images[]", "b.jpg", "b"))
	if _, err := api.Projects.Create(context.Background(), form); err != nil {
		t.Fatalf("create: %v", err)
	}

	calls := srv.Calls()
	last := calls[len(calls)-1]
	if got := last.Files["images[]"]; len(got) != 2 || got[0] != "a.jpg" || got[1] != "b.jpg" {
		t.Fatalf("images[] parts = %v", got)
	}
	if got := last.Files["cover"]; len(got) != 1 {
		t.Fatalf("cover parts = %v", got)
	}
	if _, ok := last.Fields["video"]; !ok {
		t.Fatal("expected video field to be sent even when empty")
	}

	srv.Seed("projects", map[string]any{"id": 50, "category_id": "4", "title_en": "Quoted"})
	items, err := api.Projects.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].CategoryID != 3 || len(items[0].Images) != 2 {
		t.Fatalf("created project = %+v", items[0])
	}
	if items[1].CategoryID != 4 {
		t.Fatalf("quoted category_id = %d, want 4", items[1].CategoryID)
	}
}

func TestSingletonGetAndUpsert(t *testing.T) {
	t.Parallel()

	api, srv := newAPI(t)
	current, err := api.AboutUs.Get(context.Background())
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if current != nil {
		t.Fatalf("expected nil about us, got %+v", current)
	}

	form := contentapi.NewForm().Set("mission_en", "Build").Set("mission_ar", "نبني")
	if _, created, err := api.AboutUs.Upsert(context.Background(), form); err != nil || !created {
		t.Fatalf("first upsert created=%v err=%v", created, err)
	}
	if _, created, err := api.AboutUs.Upsert(context.Background(), contentapi.NewForm().Set("mission_en", "Design")); err != nil || created {
		t.Fatalf("second upsert created=%v err=%v", created, err)
	}

	records := srv.Records("aboutus")
	if len(records) != 1 {
		t.Fatalf("aboutus rows = %d, want 1", len(records))
	}
	current, err = api.AboutUs.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.MissionEN != "Design" || current.MissionAR != "نبني" {
		t.Fatalf("about us = %+v", current)
	}
}

func TestSingletonGetReturnsFirstRow(t *testing.T) {
	t.Parallel()

	api, srv := newAPI(t)
	srv.Seed("aboutus",
		map[string]any{"id": 4, "vision_en": "first"},
		map[string]any{"id": 5, "vision_en": "second"},
	)
	current, err := api.AboutUs.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current == nil || current.VisionEN != "first" {
		t.Fatalf("about us = %+v", current)
	}
}

func memoryFile(field, name, content string) contentapi.File {
	return contentapi.File{
		Field:       field,
		Filename:    name,
		ContentType: "image/jpeg",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
