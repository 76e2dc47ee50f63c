package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/calhas/internal/auth"
	"github.com/Simplici0/calhas/internal/config"
	"github.com/Simplici0/calhas/internal/quote"
	"github.com/Simplici0/calhas/internal/storage"
	"github.com/Simplici0/calhas/internal/store"
)

type server struct {
	store         *store.Store
	quotes        *quote.Service
	auth          *auth.Service
	blobs         storage.Storage
	secureCookies bool
}

func (s *server) routes(storageCfg config.StorageConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.auth.LoadSession)

	if local, ok := s.blobs.(*storage.LocalStorage); ok {
		prefix := strings.TrimSuffix(storageCfg.UploadURLPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(local.Dir()))))
	}

	r.Get("/healthz", s.handleHealth)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/projects", s.handleListProjects)
		r.Get("/projects/{id}", s.handleGetProject)
		r.Get("/pages/{page}", s.handlePageContentMap)
		r.Post("/contact", s.handleContactSubmit)
		r.Post("/contact/images", s.handleContactImageUpload)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireSession)

			r.Get("/dashboard", s.handleDashboard)

			r.Get("/materials", s.handleListMaterials)
			r.Post("/materials", s.handleCreateMaterial)
			r.Put("/materials/{id}", s.handleUpdateMaterial)
			r.Delete("/materials/{id}", s.handleDeleteMaterial)

			r.Get("/service-types", s.handleListServiceTypes)
			r.Post("/service-types", s.handleCreateServiceType)
			r.Put("/service-types/{id}", s.handleUpdateServiceType)
			r.Delete("/service-types/{id}", s.handleDeleteServiceType)

			r.Get("/customers", s.handleListCustomers)
			r.Get("/customers/active", s.handleListActiveCustomers)
			r.Post("/customers", s.handleCreateCustomer)
			r.Get("/customers/{id}", s.handleGetCustomer)
			r.Put("/customers/{id}", s.handleUpdateCustomer)
			r.Delete("/customers/{id}", s.handleDeleteCustomer)

			r.Get("/quotes", s.handleListQuotes)
			r.Get("/quotes/form", s.handleQuoteForm)
			r.Post("/quotes", s.handleSubmitQuote)
			r.Post("/quotes/preview", s.handlePreviewQuote)
			r.Get("/quotes/{id}", s.handleGetQuote)
			r.Patch("/quotes/{id}/status", s.handleUpdateQuoteStatus)

			r.Post("/projects", s.handleCreateProject)
			r.Put("/projects/{id}", s.handleUpdateProject)
			r.Delete("/projects/{id}", s.handleDeleteProject)

			r.Get("/pages/{page}/content", s.handleListPageContent)
			r.Post("/pages/{page}/content", s.handleCreatePageContent)
			r.Put("/pages/{page}/content", s.handleSavePageContent)
			r.Put("/pages/{page}/content/{id}", s.handleUpdatePageContent)
			r.Delete("/pages/{page}/content/{id}", s.handleDeletePageContent)

			r.Get("/contacts", s.handleListContacts)
			r.Patch("/contacts/{id}/read", s.handleMarkContactRead)

			r.Post("/uploads/{bucket}", s.handleUpload)
		})
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DB().PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "db_unavailable", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Dashboard(r.Context())
	if err != nil {
		writeFailure(w, r, "load dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
