// Package aboutus serves the company profile page. The profile is a
// singleton: saving creates it when the API holds none and updates the
// stored row otherwise.
package aboutus

import (
	"context"
	"net/http"

	apperrors "github.com/decorimic/admin/internal/platform/errors"
	"github.com/decorimic/admin/internal/services/admin/flash"
	"github.com/decorimic/admin/internal/services/admin/i18n"
	"github.com/decorimic/admin/internal/services/admin/integration/contentapi"
	"github.com/decorimic/admin/internal/services/admin/module/crud"
	"github.com/decorimic/admin/internal/services/admin/module/modulehandler"
	"github.com/decorimic/admin/internal/services/admin/routepath"
	"github.com/decorimic/admin/internal/services/admin/session"
	"github.com/decorimic/admin/internal/services/admin/templates"
)

// gateKey identifies profile saves in the mutation gate.
const gateKey = "aboutus"

const entityKey = "entity.aboutUs"

// Store is the singleton surface the page needs.
type Store interface {
	Get(ctx context.Context) (*contentapi.AboutUs, error)
	Upsert(ctx context.Context, form *contentapi.Form) (contentapi.Ack, bool, error)
}

// Fields lists the profile inputs in form order.
var Fields = []crud.Field{
	{Name: "mission_en", LabelKey: "field.mission", Kind: templates.FieldTextarea, Tab: i18n.English, Required: true},
	{Name: "vision_en", LabelKey: "field.vision", Kind: templates.FieldTextarea, Tab: i18n.English, Required: true},
	{Name: "desc_en", LabelKey: "description", Kind: templates.FieldTextarea, Tab: i18n.English},
	{Name: "mission_ar", LabelKey: "field.mission", Kind: templates.FieldTextarea, Tab: i18n.Arabic, Required: true},
	{Name: "vision_ar", LabelKey: "field.vision", Kind: templates.FieldTextarea, Tab: i18n.Arabic, Required: true},
	{Name: "desc_ar", LabelKey: "description", Kind: templates.FieldTextarea, Tab: i18n.Arabic},
	{Name: "img", LabelKey: "image", Kind: templates.FieldImage},
}

// Handler serves the profile routes.
type Handler struct {
	modulehandler.Base
	store     Store
	validator *crud.Validator
	gate      *crud.Gate
}

// NewHandler builds the profile handler. A nil validator or gate gets a
// private one.
func NewHandler(base modulehandler.Base, store Store, validator *crud.Validator, gate *crud.Gate) *Handler {
	if validator == nil {
		validator = crud.NewValidator()
	}
	if gate == nil {
		gate = crud.NewGate()
	}
	return &Handler{Base: base, store: store, validator: validator, gate: gate}
}

// HandlePage shows the stored profile in both languages.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tr := h.Translator(r)
	title := tr.T("aboutUs")
	view := templates.AboutView{
		Title:     title,
		EditLabel: tr.T("editAboutUs"),
		EditURL:   routepath.AboutUsEdit,
		Empty:     tr.T("aboutUs.empty"),
	}

	profile, err := h.store.Get(ctx)
	switch {
	case err != nil:
		h.Logger().ErrorContext(ctx, "load about us", "error", err)
		view.LoadError = tr.Sprintf("flash.loadFailed", title)
	case profile != nil:
		view.Image = profile.Img
		view.Sections = []templates.DetailSection{
			section(tr, i18n.English, "tab.english", profile.MissionEN, profile.VisionEN, profile.DescEN),
			section(tr, i18n.Arabic, "tab.arabic", profile.MissionAR, profile.VisionAR, profile.DescAR),
		}
	}
	h.WritePage(w, r, modulehandler.Page{Title: title, Fragment: templates.AboutUs(h.PageContext(r, title), view)})
}

func section(tr *i18n.Translator, lang i18n.Language, labelKey, mission, vision, desc string) templates.DetailSection {
	return templates.DetailSection{
		Label: tr.T(labelKey),
		Lang:  string(lang),
		Dir:   lang.Dir(),
		Fields: []templates.DetailField{
			{Label: tr.T("field.mission"), Value: mission},
			{Label: tr.T("field.vision"), Value: vision},
			{Label: tr.T("description"), Value: desc},
		},
	}
}

// HandleEdit renders the profile form seeded from the stored row.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Get(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, crud.FormInput{Values: values(profile), Media: media(profile)}, http.StatusOK, nil)
}

// HandleSave validates the form and creates or updates the profile.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub, err := crud.ParseSubmission(r, Fields)
	if err != nil {
		h.Logger().WarnContext(ctx, "parse about us form", "error", err)
		h.writeForm(w, r, sub.Redisplay(nil), http.StatusBadRequest,
			h.Toast(r, flash.Error("flash.saveFailed", entityKey)))
		return
	}
	if err := h.validator.Check(ctx, Fields, sub.Values); err != nil {
		code := apperrors.CodeOf(err)
		h.writeForm(w, r, sub.Redisplay(apperrors.MetadataOf(err)), code.HTTPStatus(), h.Toast(r, flash.Error(code.MessageKey())))
		return
	}

	var sessionID string
	if sess, ok := session.FromContext(ctx); ok {
		sessionID = sess.ID
	}
	release, ok := h.gate.TryAcquire(sessionID, gateKey)
	if !ok {
		h.writeForm(w, r, sub.Redisplay(nil), apperrors.CodeRequestInProgress.HTTPStatus(), h.Toast(r, flash.Error("flash.busy")))
		return
	}
	defer release()

	_, created, err := h.store.Upsert(ctx, sub.APIForm(Fields))
	if err != nil {
		h.Logger().ErrorContext(ctx, "save about us", "error", err)
		h.writeForm(w, r, crud.FormInput{Values: sub.Values, Media: h.storedMedia(ctx)},
			apperrors.CodeOf(err).HTTPStatus(), h.Toast(r, flash.Error("flash.saveFailed", entityKey)))
		return
	}
	notice := "flash.updated"
	if created {
		notice = "flash.created"
	}
	h.Logger().InfoContext(ctx, "about us saved", "created", created)
	h.Flash(w, flash.Success(notice, entityKey))
	h.Redirect(w, r, routepath.AboutUs)
}

func (h *Handler) writeForm(w http.ResponseWriter, r *http.Request, in crud.FormInput, status int, toast *templates.Toast) {
	tr := h.Translator(r)
	title := tr.T("editAboutUs")
	view := templates.FormView{
		Title:       title,
		Action:      routepath.AboutUs,
		SubmitLabel: tr.T("save"),
		CancelLabel: tr.T("cancel"),
		CancelURL:   routepath.AboutUs,
	}
	view.Sections, view.Errors = crud.FormSections(r.Context(), tr, h.Logger(), Fields, in)
	h.WritePage(w, r, modulehandler.Page{
		Title:      title,
		StatusCode: status,
		Toast:      toast,
		Fragment:   templates.ResourceForm(h.PageContext(r, title), view),
	})
}

func (h *Handler) storedMedia(ctx context.Context) map[string][]string {
	profile, err := h.store.Get(ctx)
	if err != nil {
		return nil
	}
	return media(profile)
}

func values(profile *contentapi.AboutUs) map[string]string {
	if profile == nil {
		return map[string]string{}
	}
	return map[string]string{
		"mission_en": profile.MissionEN,
		"mission_ar": profile.MissionAR,
		"vision_en":  profile.VisionEN,
		"vision_ar":  profile.VisionAR,
		"desc_en":    profile.DescEN,
		"desc_ar":    profile.DescAR,
	}
}

func media(profile *contentapi.AboutUs) map[string][]string {
	if profile == nil || profile.Img == "" {
		return nil
	}
	return map[string][]string{"img": {profile.Img}}
}
