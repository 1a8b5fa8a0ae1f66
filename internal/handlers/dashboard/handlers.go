package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	apphttp "fincast/internal/http"
	"fincast/internal/models"
	"fincast/internal/services/backend"
	"fincast/internal/services/charts"
	"fincast/internal/services/evaluator"
	"fincast/internal/services/hydrator"
	"fincast/internal/services/metrics"
	"fincast/internal/services/payload"
	"fincast/internal/services/session"
	"fincast/internal/version"
	"fincast/internal/views"
)

// SnapshotSource supplies the sample dashboard snapshot
type SnapshotSource interface {
	SampleDashboard(ctx context.Context) (*models.Snapshot, error)
}

// Predictor runs a prediction for a submitted profile
type Predictor interface {
	RunNotebook(ctx context.Context, payload map[string]interface{}) (*models.PredictionResult, error)
}

// Handler serves the dashboard and input pages and their partials
type Handler struct {
	pages             *session.Store
	source            SnapshotSource
	predictor         Predictor
	renderer          apphttp.Renderer
	predictionTimeout time.Duration
}

// New creates a Handler. predictionTimeout is only used for the message
// shown when a prediction runs out of time.
func New(pages *session.Store, source SnapshotSource, predictor Predictor, renderer apphttp.Renderer, predictionTimeout time.Duration) *Handler {
	return &Handler{
		pages:             pages,
		source:            source,
		predictor:         predictor,
		renderer:          renderer,
		predictionTimeout: predictionTimeout,
	}
}

// RegisterRoutes registers all dashboard routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handlePage(models.PageDashboard, "Dashboard"))
	r.Get("/input", h.handlePage(models.PageInput, "Your Profile"))

	r.Route("/pages/{page}", func(r chi.Router) {
		r.Get("/snapshot", h.handleSnapshot)
		r.Post("/forms/{form}/evaluate", h.handleEvaluate)
		r.Post("/forms/{form}/predict", h.handlePredict)
		r.Get("/charts/{chartType}", h.handleChartData)
	})
}

func (h *Handler) handlePage(kind models.PageKind, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := h.pages.Create(kind)
		form := p.Forms[0]

		fields := make([]fieldView, 0, len(form.Fields))
		for _, fs := range form.Fields {
			fv := newFieldView(p, form, fs, "")
			if fs.Kind == models.FieldSelect {
				fv.Options = initialOptions(fs.Options)
			}
			fields = append(fields, fv)
		}

		pageData := map[string]interface{}{
			"Title":      title,
			"ActiveTab":  string(kind),
			"Page":       p,
			"Form":       form,
			"Fields":     fields,
			"Status":     views.StatusLoading,
			"Processing": views.Processing,
			"Version":    version.Get().Version,
		}

		zerolog.Ctx(r.Context()).Debug().Str("page", p.ID).Str("kind", string(kind)).Msg("page created")
		apphttp.RenderTemplate(w, h.renderer, "base", pageData)
	}
}

// lookupPage resolves the page id in the URL, answering 404 when it is
// unknown or expired
func (h *Handler) lookupPage(w http.ResponseWriter, r *http.Request) (*session.Page, bool) {
	p, ok := h.pages.Get(chi.URLParam(r, "page"))
	if !ok {
		zerolog.Ctx(r.Context()).Debug().Str("page", chi.URLParam(r, "page")).Msg("unknown page")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		apphttp.RenderTemplate(w, h.renderer, "page-expired", nil)
		return nil, false
	}
	return p, true
}

func (h *Handler) lookupForm(w http.ResponseWriter, r *http.Request) (*session.Page, models.FormSpec, bool) {
	p, ok := h.lookupPage(w, r)
	if !ok {
		return nil, models.FormSpec{}, false
	}
	f, ok := p.Form(chi.URLParam(r, "form"))
	if !ok {
		apphttp.ErrorResponse(w, r, "unknown form", http.StatusNotFound)
		return nil, models.FormSpec{}, false
	}
	if err := r.ParseForm(); err != nil {
		apphttp.ErrorResponse(w, r, "invalid form data", http.StatusBadRequest)
		return nil, models.FormSpec{}, false
	}
	return p, f, true
}

type snapshotData struct {
	Page     *session.Page
	Status   string
	Profile  string
	Insights []string
	Charts   []charts.Rendered
	Selects  []fieldView
	Fields   []fieldView
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookupPage(w, r)
	if !ok {
		return
	}
	log := zerolog.Ctx(r.Context()).With().Str("page", p.ID).Logger()

	snap, err := h.source.SampleDashboard(r.Context())
	if err != nil {
		status := views.StatusFailed
		if isTimeout(err) {
			status = views.StatusTimeout
		}
		log.Warn().Err(err).Msg("loading dashboard snapshot")
		apphttp.RenderTemplate(w, h.renderer, "snapshot", snapshotData{
			Page:     p,
			Status:   status,
			Insights: []string{views.InsightsFailed},
		})
		return
	}

	data := snapshotData{
		Page:     p,
		Status:   views.StatusUpdated,
		Profile:  views.ProfileSummary(snap.SampleProfile),
		Insights: snap.Insights,
	}
	if p.HasCharts && snap.Charts != nil {
		data.Charts = charts.Render(snap.Charts)
		p.SetCharts(snap.Charts)
	}

	res := hydrator.Apply(&p.Latch, p.Forms, snap.Options, snap.SampleProfile)
	for _, sel := range res.Selects {
		f, _ := p.Form(sel.FormID)
		fv := newFieldView(p, f, sel.Field, "")
		fv.Options = sel.Options
		fv.OOB = true
		data.Selects = append(data.Selects, fv)
	}
	for _, a := range res.Assignments {
		f, _ := p.Form(a.FormID)
		fv := newFieldView(p, f, a.Field, a.Value)
		fv.OOB = true
		data.Fields = append(data.Fields, fv)
	}
	if res.Hydrated {
		log.Debug().Int("fields", len(res.Assignments)).Msg("forms hydrated")
	}

	apphttp.RenderTemplate(w, h.renderer, "snapshot", data)
}

type evaluationData struct {
	Disposable *fieldView
	Warnings   []views.Warning
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	p, f, ok := h.lookupForm(w, r)
	if !ok {
		return
	}

	values := r.PostForm
	income := payload.ParseNumber(values.Get(models.FieldIncome))
	tier := models.DefaultCityTier
	if v, present := values[models.FieldCityTier]; present && len(v) > 0 {
		tier = v[0]
	}

	warning := func(category string) views.Warning {
		amount := payload.ParseNumber(values.Get(category))
		c, ok := evaluator.Classify(category, amount, income, tier)
		return views.NewWarning(f.WarningID(category), c, ok)
	}
	allWarnings := func() []views.Warning {
		var out []views.Warning
		for _, c := range models.ExpenseCategories {
			if _, ok := f.Field(c); ok && values.Get(c) != "" {
				out = append(out, warning(c))
			}
		}
		return out
	}
	disposable := func() *fieldView {
		fs, ok := f.Field(models.FieldDisposableIncome)
		if !ok {
			return nil
		}
		v := metrics.Disposable(income, payload.ParseNumber(values.Get(models.FieldTotalExpenses)))
		fv := newFieldView(p, f, fs, views.Plain(v))
		fv.OOB = true
		return &fv
	}

	var data evaluationData
	switch trigger := apphttp.TriggerName(r); {
	case models.IsExpenseCategory(trigger):
		data.Warnings = []views.Warning{warning(trigger)}
	case trigger == models.FieldIncome:
		data.Disposable = disposable()
		data.Warnings = allWarnings()
	case trigger == models.FieldTotalExpenses:
		data.Disposable = disposable()
	case trigger == models.FieldCityTier:
		data.Warnings = allWarnings()
	default:
		data.Disposable = disposable()
		data.Warnings = allWarnings()
	}

	apphttp.RenderTemplate(w, h.renderer, "evaluation", data)
}

type predictionData struct {
	Page *session.Page
	View views.Prediction
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	p, _, ok := h.lookupForm(w, r)
	if !ok {
		return
	}
	log := zerolog.Ctx(r.Context()).With().Str("page", p.ID).Logger()

	body := payload.Build(r.PostForm)
	start := time.Now()
	res, err := h.predictor.RunNotebook(r.Context(), body)

	var view views.Prediction
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("prediction failed")
		view = views.PredictionFailed(h.errorMessage(err))
	} else {
		log.Info().Dur("elapsed", time.Since(start)).Msg("prediction complete")
		view = views.NewPrediction(res, p.HasCharts)
		if p.HasCharts && res.Charts != nil {
			p.SetCharts(res.Charts)
		}
	}

	apphttp.RenderTemplate(w, h.renderer, "prediction", predictionData{Page: p, View: view})
}

// errorMessage is the text shown in the result panel for a failed prediction
func (h *Handler) errorMessage(err error) string {
	var appErr *backend.AppError
	var reqErr *backend.RequestError
	switch {
	case isTimeout(err):
		return views.TimeoutMessage(int(h.predictionTimeout.Seconds()))
	case errors.As(err, &appErr):
		return appErr.Message
	case errors.Is(err, backend.ErrBadResponse):
		return "Invalid response from the prediction backend."
	case errors.As(err, &reqErr) && reqErr.Status != 0:
		return "Notebook execution failed"
	case errors.As(err, &reqErr):
		return "Unable to reach the prediction backend."
	default:
		return "An error occurred"
	}
}

type chartPayload struct {
	Kind        charts.Kind    `json:"kind"`
	Mount       string         `json:"mount"`
	Figure      *models.Figure `json:"figure,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
}

func (h *Handler) handleChartData(w http.ResponseWriter, r *http.Request) {
	p, ok := h.pages.Get(chi.URLParam(r, "page"))
	if !ok {
		apphttp.JSON(w, http.StatusNotFound, map[string]string{"error": "unknown page"})
		return
	}

	kind, ok := charts.ParseKind(chi.URLParam(r, "chartType"))
	if !ok {
		apphttp.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown chart type"})
		return
	}

	c := p.Charts()
	if c == nil {
		apphttp.JSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot loaded"})
		return
	}

	rendered, ok := charts.RenderKind(c, kind)
	if !ok {
		apphttp.JSON(w, http.StatusNotFound, map[string]string{"error": "no data for chart"})
		return
	}

	apphttp.JSON(w, http.StatusOK, chartPayload{
		Kind:        rendered.Kind,
		Mount:       rendered.MountID(),
		Figure:      rendered.Figure,
		Placeholder: rendered.Placeholder,
	})
}

func isTimeout(err error) bool {
	return errors.Is(err, backend.ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
