package crud

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/services/admin/flash"
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// Screen serves the list, form, detail and delete routes of one resource.
type Screen[T contentapi.Identified] struct {
	modulehandler.Base
	def       Definition[T]
	validator *Validator
	gate      *Gate
}

// NewScreen binds def to the shared handler base. A nil validator or gate
// gets a private one.
func NewScreen[T contentapi.Identified](base modulehandler.Base, def Definition[T], validator *Validator, gate *Gate) *Screen[T] {
	if validator == nil {
		validator = NewValidator()
	}
	if gate == nil {
		gate = NewGate()
	}
	return &Screen[T]{Base: base, def: def, validator: validator, gate: gate}
}

// Slug returns the resource route segment.
func (s *Screen[T]) Slug() string {
	return s.def.Slug
}

// ListPath returns the list route.
func (s *Screen[T]) ListPath() string {
	if s.def.ListPath != "" {
		return s.def.ListPath
	}
	return routepath.Resource(s.def.Slug)
}

// Editable reports whether records can be created and edited.
func (s *Screen[T]) Editable() bool {
	return s.def.Writer != nil
}

// HasDetail reports whether records have a read-only detail view.
func (s *Screen[T]) HasDetail() bool {
	return len(s.def.Details) > 0
}

// HandleList renders the table, filtered by ?q= over the active-language
// search fields.
func (s *Screen[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tr := s.Translator(r)
	title := tr.T(s.def.TitleKey)
	page := s.PageContext(r, title)
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	view := templates.ListView{
		Title:             title,
		ListURL:           s.ListPath(),
		Query:             query,
		SearchPlaceholder: tr.T(s.def.SearchKey),
		Columns:           columnLabels(tr, s.def.Columns),
		EmptyLabel:        tr.T("list.empty"),
	}
	if s.Editable() {
		view.AddLabel = tr.T(s.def.AddKey)
		view.AddURL = routepath.ResourceNew(s.def.Slug)
	}

	records, err := s.def.Repo.List(ctx)
	if err != nil {
		s.Logger().ErrorContext(ctx, "list resource", "resource", s.def.Slug, "error", err)
		view.LoadError = tr.Sprintf("flash.loadFailed", title)
	}
	rc := s.renderContext(ctx, tr)
	for _, rec := range records {
		if !s.matches(rec, tr.Language(), query) {
			continue
		}
		view.Rows = append(view.Rows, s.row(rec, rc))
	}
	view.Total = len(records)
	view.CountLabel = tr.Sprintf("list.count", len(view.Rows), len(records))

	s.WritePage(w, r, modulehandler.Page{Title: title, Fragment: templates.ResourceList(page, view)})
}

// HandleNew renders the empty create form.
func (s *Screen[T]) HandleNew(w http.ResponseWriter, r *http.Request) {
	if !s.Editable() {
		s.WriteNotFound(w, r)
		return
	}
	s.writeForm(w, r, formState{input: FormInput{Values: map[string]string{}}})
}

// HandleCreate validates and submits a new record.
func (s *Screen[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, 0)
}

// HandleEdit renders the edit form seeded from the stored record.
func (s *Screen[T]) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if !s.Editable() {
		s.WriteNotFound(w, r)
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	rec, err := s.def.Repo.Get(r.Context(), id)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	state := formState{id: id, input: FormInput{Values: map[string]string{}}}
	if s.def.Values != nil {
		state.input.Values = s.def.Values(rec)
	}
	if s.def.Media != nil {
		state.input.Media = s.def.Media(rec)
	}
	s.writeForm(w, r, state)
}

// HandleUpdate validates and submits changes to a stored record.
func (s *Screen[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	s.submit(w, r, id)
}

// HandleDetail renders one record read-only.
func (s *Screen[T]) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if !s.HasDetail() {
		s.WriteNotFound(w, r)
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	rec, err := s.def.Repo.Get(ctx, id)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	tr := s.Translator(r)
	title := tr.T(s.def.ViewKey)
	rc := s.renderContext(ctx, tr)
	view := templates.DetailView{
		Title:       title,
		BackLabel:   tr.T("page.back"),
		BackURL:     s.ListPath(),
		DeleteLabel: tr.T("delete"),
		DeleteURL:   routepath.ResourceDelete(s.def.Slug, id),
	}
	if s.Editable() {
		view.EditLabel = tr.T("edit")
		view.EditURL = routepath.ResourceEdit(s.def.Slug, id)
	}
	for _, col := range s.def.Details {
		cell := col.Cell(rec, rc)
		view.Fields = append(view.Fields, templates.DetailField{
			Label: tr.T(col.LabelKey) + col.Suffix,
			Value: cell.Text,
			Image: cell.Image,
		})
	}
	s.WritePage(w, r, modulehandler.Page{Title: title, Fragment: templates.ResourceDetail(s.PageContext(r, title), view)})
}

// HandleDeleteConfirm asks before deleting a record.
func (s *Screen[T]) HandleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	rec, err := s.def.Repo.Get(r.Context(), id)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	tr := s.Translator(r)
	title := tr.T(s.def.DeleteKey)
	view := templates.ConfirmView{
		Title:        title,
		Message:      tr.T("confirm.delete"),
		Action:       routepath.ResourceDelete(s.def.Slug, id),
		ConfirmLabel: tr.T("delete"),
		CancelLabel:  tr.T("cancel"),
		CancelURL:    s.ListPath(),
	}
	if s.def.Subject != nil {
		view.Subject = s.def.Subject(rec, tr.Language())
	}
	s.WritePage(w, r, modulehandler.Page{Title: title, Fragment: templates.ConfirmDelete(s.PageContext(r, title), view)})
}

// HandleDelete deletes a record and returns to the list.
func (s *Screen[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	release, ok := s.gate.TryAcquire(sessionID(r), s.def.Slug)
	if !ok {
		s.Flash(w, flash.Error("flash.busy"))
		s.Redirect(w, r, s.ListPath())
		return
	}
	defer release()

	if _, err := s.def.Repo.Delete(ctx, id); err != nil {
		s.Logger().ErrorContext(ctx, "delete resource", "resource", s.def.Slug, "id", id, "error", err)
		s.Flash(w, flash.Error("flash.deleteFailed", s.def.EntityKey))
		s.Redirect(w, r, s.ListPath())
		return
	}
	s.Logger().InfoContext(ctx, "resource deleted", "resource", s.def.Slug, "id", id)
	s.Flash(w, flash.Success("flash.deleted", s.def.EntityKey))
	s.Redirect(w, r, s.ListPath())
}

func (s *Screen[T]) submit(w http.ResponseWriter, r *http.Request, id int64) {
	if !s.Editable() {
		s.WriteNotFound(w, r)
		return
	}
	ctx := r.Context()
	sub, err := ParseSubmission(r, s.def.Fields)
	if err != nil {
		s.Logger().WarnContext(ctx, "parse resource form", "resource", s.def.Slug, "error", err)
		s.writeForm(w, r, formState{
			id:     id,
			input:  sub.Redisplay(nil),
			status: http.StatusBadRequest,
			toast:  s.Toast(r, flash.Error("flash.saveFailed", s.def.EntityKey)),
		})
		return
	}

	if err := s.validator.Check(ctx, s.def.Fields, sub.Values); err != nil {
		s.writeForm(w, r, formState{
			id:     id,
			input:  sub.Redisplay(apperrors.MetadataOf(err)),
			status: apperrors.CodeOf(err).HTTPStatus(),
			toast:  s.Toast(r, flash.Error(apperrors.CodeOf(err).MessageKey())),
		})
		return
	}

	release, ok := s.gate.TryAcquire(sessionID(r), s.def.Slug)
	if !ok {
		s.writeForm(w, r, formState{
			id:     id,
			input:  sub.Redisplay(nil),
			status: apperrors.CodeRequestInProgress.HTTPStatus(),
			toast:  s.Toast(r, flash.Error("flash.busy")),
		})
		return
	}
	defer release()

	form := sub.APIForm(s.def.Fields)
	notice := "flash.created"
	if id == 0 {
		_, err = s.def.Writer.Create(ctx, form)
	} else {
		notice = "flash.updated"
		_, err = s.def.Writer.Update(ctx, id, form)
	}
	if err != nil {
		s.Logger().ErrorContext(ctx, "save resource", "resource", s.def.Slug, "id", id, "error", err)
		s.writeForm(w, r, formState{
			id:     id,
			input:  FormInput{Values: sub.Values, Media: s.storedMedia(ctx, id), Options: sub.Options},
			status: apperrors.CodeOf(err).HTTPStatus(),
			toast:  s.Toast(r, flash.Error("flash.saveFailed", s.def.EntityKey)),
		})
		return
	}
	s.Logger().InfoContext(ctx, "resource saved", "resource", s.def.Slug, "id", id, "files", form.FileFields())
	s.Flash(w, flash.Success(notice, s.def.EntityKey))
	s.Redirect(w, r, s.ListPath())
}

// formState is what a form render needs. id 0 means create.
type formState struct {
	id     int64
	input  FormInput
	status int
	toast  *templates.Toast
}

func (s *Screen[T]) writeForm(w http.ResponseWriter, r *http.Request, state formState) {
	ctx := r.Context()
	tr := s.Translator(r)

	titleKey := s.def.AddKey
	action := routepath.Resource(s.def.Slug)
	submitLabel := tr.T("create")
	if state.id > 0 {
		titleKey = s.def.EditKey
		action = routepath.ResourceItem(s.def.Slug, state.id)
		submitLabel = tr.T("update")
	}
	title := tr.T(titleKey)
	view := templates.FormView{
		Title:       title,
		Action:      action,
		SubmitLabel: submitLabel,
		CancelLabel: tr.T("cancel"),
		CancelURL:   s.ListPath(),
	}

	view.Sections, view.Errors = FormSections(ctx, tr, s.Logger(), s.def.Fields, state.input)

	status := state.status
	if status == 0 {
		status = http.StatusOK
	}
	s.WritePage(w, r, modulehandler.Page{
		Title:      title,
		StatusCode: status,
		Toast:      state.toast,
		Fragment:   templates.ResourceForm(s.PageContext(r, title), view),
	})
}

// storedMedia reloads the media of a record after a failed write.
func (s *Screen[T]) storedMedia(ctx context.Context, id int64) map[string][]string {
	if id <= 0 || s.def.Media == nil {
		return nil
	}
	rec, err := s.def.Repo.Get(ctx, id)
	if err != nil {
		s.Logger().DebugContext(ctx, "reload stored media", "resource", s.def.Slug, "id", id, "error", err)
		return nil
	}
	return s.def.Media(rec)
}

func (s *Screen[T]) renderContext(ctx context.Context, tr *i18n.Translator) RenderContext {
	rc := RenderContext{Tr: tr, Refs: map[string]string{}}
	if s.def.References == nil {
		return rc
	}
	refs, err := s.def.References(ctx, tr.Language())
	if err != nil {
		s.Logger().WarnContext(ctx, "load references", "resource", s.def.Slug, "error", err)
		return rc
	}
	if refs != nil {
		rc.Refs = refs
	}
	return rc
}

func (s *Screen[T]) matches(rec T, lang i18n.Language, query string) bool {
	if query == "" || s.def.Search == nil {
		return true
	}
	for _, text := range s.def.Search(rec, lang) {
		if i18n.ContainsFold(text, query) {
			return true
		}
	}
	return false
}

func (s *Screen[T]) row(rec T, rc RenderContext) templates.Row {
	id := rec.RecordID()
	row := templates.Row{ID: id, DeleteURL: routepath.ResourceDelete(s.def.Slug, id)}
	for _, col := range s.def.Columns {
		row.Cells = append(row.Cells, col.Cell(rec, rc))
	}
	if s.HasDetail() {
		row.ViewURL = routepath.ResourceItem(s.def.Slug, id)
	}
	if s.Editable() {
		row.EditURL = routepath.ResourceEdit(s.def.Slug, id)
	}
	return row
}

func (s *Screen[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(routepath.IDParam), 10, 64)
	if err != nil || id <= 0 {
		s.WriteNotFound(w, r)
		return 0, false
	}
	return id, true
}

func columnLabels[T any](tr *i18n.Translator, columns []Column[T]) []string {
	labels := make([]string, 0, len(columns))
	for _, col := range columns {
		labels = append(labels, tr.T(col.LabelKey)+col.Suffix)
	}
	return labels
}

func sessionID(r *http.Request) string {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess.ID
	}
	return ""
}
