package crud

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/net/html"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/services/admin/flash"
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi/contentapitest"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/templates"
	"github.com/decorimic/admin/internal/testkit/htmltest"
)

func newFixture(t *testing.T) (*contentapi.API, *contentapitest.Server, *http.ServeMux) {
	t.Helper()
	srv := contentapitest.NewServer()
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := contentapi.NewClient(srv.URL, contentapi.Options{Logger: logger})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	api := contentapi.NewAPI(client)
	base := modulehandler.NewBase(logger, false)
	validator := NewValidator()
	gate := NewGate()

	mux := http.NewServeMux()
	RegisterRoutes(mux, NewScreen(base, categoryDefinition(api), validator, gate))
	RegisterRoutes(mux, NewScreen(base, reviewDefinition(api), validator, gate))
	RegisterRoutes(mux, NewScreen(base, clientDefinition(api), validator, gate))
	RegisterRoutes(mux, NewScreen(base, messageDefinition(api), validator, gate))
	return api, srv, mux
}

func textField(name string, tab i18n.Language) Field {
	return Field{Name: name, LabelKey: "name", Kind: templates.FieldText, Tab: tab, Required: true}
}

func categoryDefinition(api *contentapi.API) Definition[contentapi.Category] {
	return Definition[contentapi.Category]{
		Slug:      "categories",
		TitleKey:  "categories",
		AddKey:    "addCategory",
		EditKey:   "editCategory",
		DeleteKey: "deleteCategory",
		SearchKey: "searchCategories",
		EntityKey: "entity.category",
		Repo:      api.Categories,
		Writer:    api.Categories,
		Fields: []Field{
			textField("name_en", i18n.English),
			{Name: "desc_en", LabelKey: "description", Kind: templates.FieldTextarea, Tab: i18n.English, Required: true},
			textField("name_ar", i18n.Arabic),
			{Name: "desc_ar", LabelKey: "description", Kind: templates.FieldTextarea, Tab: i18n.Arabic, Required: true},
		},
		Columns: []Column[contentapi.Category]{
			{LabelKey: "name", Suffix: " (EN)", Cell: func(c contentapi.Category, _ RenderContext) templates.Cell {
				return templates.Cell{Text: c.NameEN}
			}},
			{LabelKey: "name", Suffix: " (AR)", Cell: func(c contentapi.Category, _ RenderContext) templates.Cell {
				return templates.Cell{Text: c.NameAR}
			}},
		},
		Values: func(c contentapi.Category) map[string]string {
			return map[string]string{"name_en": c.NameEN, "name_ar": c.NameAR, "desc_en": c.DescEN, "desc_ar": c.DescAR}
		},
		Search: func(c contentapi.Category, lang i18n.Language) []string {
			if lang == i18n.Arabic {
				return []string{c.NameAR, c.DescAR}
			}
			return []string{c.NameEN, c.DescEN}
		},
	}
}

func reviewDefinition(api *contentapi.API) Definition[contentapi.Review] {
	return Definition[contentapi.Review]{
		Slug:      "testimonials",
		TitleKey:  "testimonials",
		AddKey:    "addTestimonial",
		EditKey:   "editTestimonial",
		DeleteKey: "deleteTestimonial",
		SearchKey: "searchTestimonials",
		EntityKey: "entity.testimonial",
		Repo:      api.Reviews,
		Writer:    api.Reviews,
		Fields: []Field{
			{Name: "name", LabelKey: "name", Kind: templates.FieldText, Required: true},
			{Name: "text", LabelKey: "text", Kind: templates.FieldTextarea, Required: true},
			{Name: "num_star", LabelKey: "rating", Kind: templates.FieldSelect, Required: true, Integer: true, Rule: "min=1,max=5", MessageKey: "validation.rating"},
		},
		Columns: []Column[contentapi.Review]{
			{LabelKey: "name", Cell: func(r contentapi.Review, _ RenderContext) templates.Cell {
				return templates.Cell{Text: r.Name}
			}},
		},
	}
}

func clientDefinition(api *contentapi.API) Definition[contentapi.ClientLogo] {
	return Definition[contentapi.ClientLogo]{
		Slug:      "clients",
		TitleKey:  "ourClients",
		AddKey:    "addClient",
		EditKey:   "editClient",
		DeleteKey: "deleteClient",
		SearchKey: "searchClients",
		EntityKey: "entity.client",
		Repo:      api.Clients,
		Writer:    api.Clients,
		Fields: []Field{
			textField("name_en", i18n.English),
			textField("name_ar", i18n.Arabic),
			{Name: "img", LabelKey: "field.logo", Kind: templates.FieldImage},
		},
		Columns: []Column[contentapi.ClientLogo]{
			{LabelKey: "name", Cell: func(c contentapi.ClientLogo, _ RenderContext) templates.Cell {
				return templates.Cell{Text: c.NameEN}
			}},
		},
		Values: func(c contentapi.ClientLogo) map[string]string {
			return map[string]string{"name_en": c.NameEN, "name_ar": c.NameAR}
		},
		Media: func(c contentapi.ClientLogo) map[string][]string {
			if c.Img == "" {
				return nil
			}
			return map[string][]string{"img": {c.Img}}
		},
	}
}

func messageDefinition(api *contentapi.API) Definition[contentapi.ContactMessage] {
	return Definition[contentapi.ContactMessage]{
		Slug:      "messages",
		TitleKey:  "contactMessages",
		DeleteKey: "deleteMessage",
		SearchKey: "searchMessages",
		ViewKey:   "viewMessage",
		EntityKey: "entity.message",
		Repo:      api.Contact,
		Columns: []Column[contentapi.ContactMessage]{
			{LabelKey: "name", Cell: func(m contentapi.ContactMessage, _ RenderContext) templates.Cell {
				return templates.Cell{Text: m.Name}
			}},
		},
		Details: []Column[contentapi.ContactMessage]{
			{LabelKey: "message", Cell: func(m contentapi.ContactMessage, _ RenderContext) templates.Cell {
				return templates.Cell{Text: m.Msg}
			}},
		},
		Subject: func(m contentapi.ContactMessage, _ i18n.Language) string {
			return m.Name
		},
	}
}

func seedCategories(srv *contentapitest.Server) {
	srv.Seed("categories",
		map[string]any{"name_en": "Kitchens", "name_ar": "مطابخ", "desc_en": "Modern kitchens", "desc_ar": "مطابخ حديثة"},
		map[string]any{"name_en": "Bedrooms", "name_ar": "غرف نوم", "desc_en": "Calm rooms", "desc_ar": "غرف هادئة"},
		map[string]any{"name_en": "Kitchen islands", "name_ar": "جزر المطبخ", "desc_en": "Worktops", "desc_ar": "أسطح عمل"},
	)
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashNotice(t *testing.T, rec *httptest.ResponseRecorder) flash.Notice {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == flash.CookieName {
			req.AddCookie(cookie)
		}
	}
	notice, ok := flash.ReadAndClear(httptest.NewRecorder(), req, false)
	if !ok {
		t.Fatal("expected flash notice")
	}
	return notice
}

func TestListRendersRecordsInAPIOrder(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	seedCategories(srv)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/categories", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	rows := htmltest.TableRows(htmltest.Parse(t, rec.Body.String()))
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "Kitchens" || rows[0][1] != "مطابخ" {
		t.Fatalf("first row = %v", rows[0])
	}
	if rows[1][0] != "Bedrooms" {
		t.Fatalf("second row = %v", rows[1])
	}
}

func TestListSearchFiltersByActiveLanguage(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	seedCategories(srv)

	tests := []struct {
		name  string
		lang  i18n.Language
		query string
		want  int
	}{
		{name: "english substring", lang: i18n.English, query: "KITCHEN", want: 2},
		{name: "english description", lang: i18n.English, query: "calm", want: 1},
		{name: "arabic name", lang: i18n.Arabic, query: "مطابخ", want: 1},
		{name: "arabic ignores english", lang: i18n.Arabic, query: "Kitchens", want: 0},
		{name: "no match", lang: i18n.English, query: "garden", want: 0},
		{name: "blank query", lang: i18n.English, query: "  ", want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/categories?q="+url.QueryEscape(tc.query), nil)
			req = req.WithContext(i18n.WithLanguage(req.Context(), tc.lang))
			rec := serve(mux, req)
			doc := htmltest.Parse(t, rec.Body.String())
			if got := len(htmltest.TableRows(doc)); got != tc.want {
				t.Fatalf("rows = %d, want %d", got, tc.want)
			}
			if tc.lang == i18n.English {
				count := htmltest.Text(htmltest.Find(doc, func(n *html.Node) bool {
					v, _ := htmltest.Attr(n, "class")
					return n.Data == "p" && v == "count"
				}))
				if want := strconv.Itoa(tc.want) + " of 3"; count != want {
					t.Fatalf("count = %q, want %q", count, want)
				}
			}
		})
	}
}

func TestListShowsLoadErrorWhenAPIFails(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	srv.FailWith("categories", http.StatusInternalServerError)

	rec := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/categories", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Failed to load Categories") {
		t.Fatalf("expected load failure alert, body = %s", rec.Body.String())
	}
}

func TestCreateAddsRecordAndRedirects(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	seedCategories(srv)

	rec := serve(mux, postForm("/admin/categories", url.Values{
		"name_en": {" Kitchens "},
		"name_ar": {"مطابخ"},
		"desc_en": {"Fitted kitchens"},
		"desc_ar": {"مطابخ مجهزة"},
	}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/admin/categories" {
		t.Fatalf("location = %q", got)
	}
	records := srv.Records("categories")
	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if got := records[3]["name_en"]; got != "Kitchens" {
		t.Fatalf("name_en = %v, want trimmed value", got)
	}
	notice := flashNotice(t, rec)
	if notice.Kind != flash.KindSuccess || notice.Key != "flash.created" {
		t.Fatalf("notice = %+v", notice)
	}

	list := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/categories", nil))
	rows := htmltest.TableRows(htmltest.Parse(t, list.Body.String()))
	if len(rows) != 4 || rows[3][0] != "Kitchens" {
		t.Fatalf("rows after create = %v", rows)
	}
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)

	rec := serve(mux, postForm("/admin/categories", url.Values{
		"name_en": {"Kitchens"},
		"name_ar": {"   "},
		"desc_en": {"Fitted kitchens"},
	}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if n := srv.CallCount(http.MethodPost, "/categories"); n != 0 {
		t.Fatalf("api posts = %d, want 0", n)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Please fill in all required fields") {
		t.Fatalf("expected validation toast")
	}
	doc := htmltest.Parse(t, body)
	input := htmltest.Find(doc, func(n *html.Node) bool {
		v, _ := htmltest.Attr(n, "name")
		return n.Data == "input" && v == "name_en"
	})
	if v, _ := htmltest.Attr(input, "value"); v != "Kitchens" {
		t.Fatalf("name_en value = %q, want submitted value kept", v)
	}
}

func TestTestimonialRatingBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stars    string
		wantCode int
		wantPost int
	}{
		{stars: "0", wantCode: http.StatusUnprocessableEntity},
		{stars: "6", wantCode: http.StatusUnprocessableEntity},
		{stars: "4.5", wantCode: http.StatusUnprocessableEntity},
		{stars: "", wantCode: http.StatusUnprocessableEntity},
		{stars: "1", wantCode: http.StatusSeeOther, wantPost: 1},
		{stars: "5", wantCode: http.StatusSeeOther, wantPost: 1},
	}
	for _, tc := range tests {
		t.Run("stars="+tc.stars, func(t *testing.T) {
			t.Parallel()

			_, srv, mux := newFixture(t)
			rec := serve(mux, postForm("/admin/testimonials", url.Values{
				"name":     {"Mona"},
				"text":     {"Great work"},
				"num_star": {tc.stars},
			}))
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			if n := srv.CallCount(http.MethodPost, "/reviews"); n != tc.wantPost {
				t.Fatalf("api posts = %d, want %d", n, tc.wantPost)
			}
		})
	}
}

func TestCreateForwardsUploadedFile(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("name_en", "Acme")
	_ = mw.WriteField("name_ar", "أكمي")
	part, err := mw.CreateFormFile("img", "logo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("png-bytes"))
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/clients", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serve(mux, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	calls := srv.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if got := calls[0].Files["img"]; len(got) != 1 || got[0] != "logo.png" {
		t.Fatalf("forwarded files = %v", calls[0].Files)
	}
	if got := srv.Records("clients")[0]["img"]; got != "uploads/logo.png" {
		t.Fatalf("stored img = %v", got)
	}
}

func TestUpdateKeepsStoredMediaWithoutUpload(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	srv.Seed("clients", map[string]any{"id": int64(7), "name_en": "Acme", "name_ar": "أكمي", "img": "uploads/acme.png"})

	edit := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/clients/7/edit", nil))
	if edit.Code != http.StatusOK {
		t.Fatalf("edit status = %d", edit.Code)
	}
	if !strings.Contains(edit.Body.String(), "uploads/acme.png") {
		t.Fatal("edit form should show the stored logo")
	}

	rec := serve(mux, postForm("/admin/clients/7", url.Values{"name_en": {"Acme Ltd"}, "name_ar": {"أكمي"}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	calls := srv.Calls()
	last := calls[len(calls)-1]
	if last.Method != http.MethodPost || last.Path != "/clients/7" || last.Override != http.MethodPatch {
		t.Fatalf("update call = %+v", last)
	}
	if len(last.Files) != 0 {
		t.Fatalf("update forwarded files = %v, want none", last.Files)
	}
	stored := srv.Records("clients")[0]
	if stored["name_en"] != "Acme Ltd" || stored["img"] != "uploads/acme.png" {
		t.Fatalf("stored = %v", stored)
	}
	if notice := flashNotice(t, rec); notice.Key != "flash.updated" {
		t.Fatalf("notice = %+v", notice)
	}
}

func TestInvalidUpdateRedrawsWithoutAPICalls(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	srv.Seed("clients", map[string]any{"id": int64(7), "name_en": "Acme", "name_ar": "أكمي", "img": "uploads/acme.png"})

	edit := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/clients/7/edit", nil))
	doc := htmltest.Parse(t, edit.Body.String())
	values := url.Values{"name_en": {" "}, "name_ar": {"أكمي"}}
	for _, input := range htmltest.FindAll(doc, htmltest.HasAttr("input", "name")) {
		name, _ := htmltest.Attr(input, "name")
		if typ, _ := htmltest.Attr(input, "type"); typ == "hidden" {
			value, _ := htmltest.Attr(input, "value")
			values.Add(name, value)
		}
	}
	if values.Get(templates.CurrentInputName("img")) != "uploads/acme.png" {
		t.Fatalf("edit form should carry the stored logo, got %v", values)
	}
	before := len(srv.Calls())

	rec := serve(mux, postForm("/admin/clients/7", values))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if calls := srv.Calls()[before:]; len(calls) != 0 {
		t.Fatalf("calls = %+v, want none", calls)
	}
	if !strings.Contains(rec.Body.String(), `src="uploads/acme.png"`) {
		t.Fatal("redrawn form should keep the stored logo")
	}
}

func TestFormSectionsPreferCarriedOptions(t *testing.T) {
	t.Parallel()

	loads := 0
	fields := []Field{{
		Name:     "category_id",
		LabelKey: "field.category",
		Kind:     templates.FieldSelect,
		Options: func(context.Context, *i18n.Translator) ([]templates.Option, error) {
			loads++
			return []templates.Option{{Value: "1", Label: "Kitchens"}}, nil
		},
	}}
	tr := i18n.NewTranslator(i18n.English)
	carried := map[string][]templates.Option{"category_id": {{Value: "2", Label: "Bedrooms"}}}

	sections, _ := FormSections(context.Background(), tr, nil, fields, FormInput{
		Values:  map[string]string{"category_id": "2"},
		Options: carried,
	})
	if loads != 0 {
		t.Fatalf("options loaded %d times, want 0", loads)
	}
	got := sections[0].Fields[0].Options
	if len(got) != 1 || got[0].Label != "Bedrooms" || !got[0].Selected {
		t.Fatalf("options = %+v", got)
	}
	if carried["category_id"][0].Selected {
		t.Fatal("carried options must not be modified")
	}

	FormSections(context.Background(), tr, nil, fields, FormInput{})
	if loads != 1 {
		t.Fatalf("options loaded %d times, want 1", loads)
	}
}

func TestOptionEncodingRoundTrips(t *testing.T) {
	t.Parallel()

	in := templates.Option{Value: "12", Label: "غرف & نوم"}
	out, ok := templates.DecodeOption(in.Encode())
	if !ok || out.Value != in.Value || out.Label != in.Label {
		t.Fatalf("decoded = %+v, %v", out, ok)
	}
	if _, ok := templates.DecodeOption("garbage"); ok {
		t.Fatal("value without v should not decode")
	}
}

func TestUpdateFailureRerendersForm(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	seedCategories(srv)
	srv.FailWith("categories", http.StatusInternalServerError)

	rec := serve(mux, postForm("/admin/categories/1", url.Values{
		"name_en": {"Kitchens"}, "name_ar": {"مطابخ"}, "desc_en": {"x"}, "desc_ar": {"y"},
	}))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rec.Body.String(), "Failed to save Category") {
		t.Fatal("expected save failure toast")
	}
}

func TestEditMissingRecordRendersNotFound(t *testing.T) {
	t.Parallel()

	_, _, mux := newFixture(t)
	for _, path := range []string{"/admin/categories/99/edit", "/admin/categories/abc/edit", "/admin/categories/0/delete"} {
		rec := serve(mux, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestDeleteRemovesExactlyThatRecord(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	seedCategories(srv)

	confirm := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/categories/2/delete", nil))
	if confirm.Code != http.StatusOK {
		t.Fatalf("confirm status = %d", confirm.Code)
	}
	if n := srv.CallCount(http.MethodDelete, "/categories/2"); n != 0 {
		t.Fatalf("confirmation must not delete, deletes = %d", n)
	}

	rec := serve(mux, httptest.NewRequest(http.MethodPost, "/admin/categories/2/delete", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	records := srv.Records("categories")
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	for _, record := range records {
		if record["name_en"] == "Bedrooms" {
			t.Fatal("deleted record still stored")
		}
	}
	if notice := flashNotice(t, rec); notice.Key != "flash.deleted" {
		t.Fatalf("notice = %+v", notice)
	}
}

func TestDeleteFailureFlashesError(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	seedCategories(srv)
	srv.FailWith("categories", http.StatusInternalServerError)

	rec := serve(mux, httptest.NewRequest(http.MethodPost, "/admin/categories/1/delete", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	notice := flashNotice(t, rec)
	if notice.Kind != flash.KindError || notice.Key != "flash.deleteFailed" {
		t.Fatalf("notice = %+v", notice)
	}
}

func TestReadOnlyResourceHasNoWriteRoutes(t *testing.T) {
	t.Parallel()

	_, srv, mux := newFixture(t)
	srv.Seed("contactus", map[string]any{"id": int64(3), "name": "Omar", "msg": "Need a quote"})

	detail := serve(mux, httptest.NewRequest(http.MethodGet, "/admin/messages/3", nil))
	if detail.Code != http.StatusOK {
		t.Fatalf("detail status = %d", detail.Code)
	}
	if !strings.Contains(detail.Body.String(), "Need a quote") {
		t.Fatal("detail should show the message")
	}
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/messages/new", nil),
		httptest.NewRequest(http.MethodGet, "/admin/messages/3/edit", nil),
		postForm("/admin/messages", url.Values{"name": {"x"}}),
	} {
		rec := serve(mux, req)
		if rec.Code == http.StatusOK || rec.Code == http.StatusSeeOther {
			t.Fatalf("%s %s status = %d, want no route", req.Method, req.URL.Path, rec.Code)
		}
	}
	if srv.CallCount(http.MethodPost, "/contactus") != 0 {
		t.Fatal("read-only resource must not post")
	}
}

func TestMutationGateRejectsConcurrentSubmission(t *testing.T) {
	t.Parallel()

	api, srv, _ := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := NewGate()
	mux := http.NewServeMux()
	RegisterRoutes(mux, NewScreen(modulehandler.NewBase(logger, false), categoryDefinition(api), nil, gate))

	release, ok := gate.TryAcquire("", "categories")
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}
	defer release()

	rec := serve(mux, postForm("/admin/categories", url.Values{
		"name_en": {"Kitchens"}, "name_ar": {"مطابخ"}, "desc_en": {"x"}, "desc_ar": {"y"},
	}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if n := srv.CallCount(http.MethodPost, "/categories"); n != 0 {
		t.Fatalf("api posts = %d, want 0", n)
	}
}

func TestGate(t *testing.T) {
	t.Parallel()

	gate := NewGate()
	release, ok := gate.TryAcquire("s1", "news")
	if !ok {
		t.Fatal("first acquire failed")
	}
	if _, ok := gate.TryAcquire("s1", "news"); ok {
		t.Fatal("second acquire for same key should fail")
	}
	if _, ok := gate.TryAcquire("s2", "news"); !ok {
		t.Fatal("other session should not be blocked")
	}
	if _, ok := gate.TryAcquire("s1", "clients"); !ok {
		t.Fatal("other resource should not be blocked")
	}
	release()
	release()
	if _, ok := gate.TryAcquire("s1", "news"); !ok {
		t.Fatal("acquire after release failed")
	}
}

func TestValidatorRules(t *testing.T) {
	t.Parallel()

	fields := []Field{
		{Name: "icon", Kind: templates.FieldSelect, Required: true, Rule: "oneof=star heart", MessageKey: "validation.icon"},
		{Name: "video", Kind: templates.FieldURL, Rule: "http_url", MessageKey: "validation.url"},
		{Name: "category_id", Kind: templates.FieldSelect, Required: true, Integer: true, Rule: "gt=0", MessageKey: "validation.category"},
		{Name: "cover", Kind: templates.FieldImage, Required: true},
	}
	v := NewValidator()

	tests := []struct {
		name   string
		values map[string]string
		failed map[string]string
	}{
		{
			name:   "valid without optional url",
			values: map[string]string{"icon": "star", "category_id": "3"},
		},
		{
			name:   "valid url",
			values: map[string]string{"icon": "heart", "category_id": "3", "video": "https://youtu.be/x"},
		},
		{
			name:   "bad icon",
			values: map[string]string{"icon": "sun", "category_id": "3"},
			failed: map[string]string{"icon": "validation.icon"},
		},
		{
			name:   "missing icon",
			values: map[string]string{"category_id": "3"},
			failed: map[string]string{"icon": "required"},
		},
		{
			name:   "relative url",
			values: map[string]string{"icon": "star", "category_id": "3", "video": "watch?v=1"},
			failed: map[string]string{"video": "validation.url"},
		},
		{
			name:   "non numeric category",
			values: map[string]string{"icon": "star", "category_id": "kitchens"},
			failed: map[string]string{"category_id": "validation.category"},
		},
		{
			name:   "missing category",
			values: map[string]string{"icon": "star"},
			failed: map[string]string{"category_id": "required"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Check(context.Background(), fields, tc.values)
			if len(tc.failed) == 0 {
				if err != nil {
					t.Fatalf("check: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if code := apperrors.CodeOf(err); code != apperrors.CodeValidationFailed {
				t.Fatalf("code = %s, want %s", code, apperrors.CodeValidationFailed)
			}
			got := apperrors.MetadataOf(err)
			if len(got) != len(tc.failed) {
				t.Fatalf("failed = %v, want %v", got, tc.failed)
			}
			for field, key := range tc.failed {
				if got[field] != key {
					t.Fatalf("failed[%s] = %q, want %q", field, got[field], key)
				}
			}
		})
	}
}
