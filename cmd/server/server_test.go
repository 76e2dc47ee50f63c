package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Simplici0/calhas/internal/auth"
	"github.com/Simplici0/calhas/internal/config"
	"github.com/Simplici0/calhas/internal/db"
	"github.com/Simplici0/calhas/internal/migrations"
	"github.com/Simplici0/calhas/internal/model"
	"github.com/Simplici0/calhas/internal/quote"
	"github.com/Simplici0/calhas/internal/seed"
	"github.com/Simplici0/calhas/internal/storage"
	"github.com/Simplici0/calhas/internal/store"
)

const (
	testAdminEmail    = "admin@calhas.com"
	testAdminPassword = "s3gredo"
)

type testApp struct {
	handler   http.Handler
	store     *store.Store
	uploadDir string
	cookie    *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()

	database, err := db.Open(filepath.Join(dir, "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(t.Context(), database, seed.Config{AdminEmail: testAdminEmail, AdminPassword: testAdminPassword}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	storageCfg := config.StorageConfig{Driver: "local", UploadDir: filepath.Join(dir, "uploads"), UploadURLPrefix: "/uploads"}
	records := store.New(database)
	srv := &server{
		store:  records,
		quotes: quote.NewService(records),
		auth:   auth.NewService(records, "test-secret", time.Hour),
		blobs:  storage.NewLocalStorage(storageCfg.UploadDir, storageCfg.UploadURLPrefix),
	}
	return &testApp{handler: srv.routes(storageCfg), store: records, uploadDir: storageCfg.UploadDir}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/login", loginRequest{Email: testAdminEmail, Password: testAdminPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			a.cookie = c
			return
		}
	}
	t.Fatalf("login did not set %s cookie", auth.CookieName)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func (a *testApp) createCustomer(t *testing.T, name string) int64 {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/admin/customers", map[string]any{
		"customer_type": "PF", "status": "ativo", "full_name": name, "phone": "11999990000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create customer status = %d, body = %s", rec.Code, rec.Body.String())
	}
	return decodeBody[model.Customer](t, rec).ID
}

func calhaItem() quote.ItemFields {
	return quote.ItemFields{
		ItemType: "Calha", MaterialID: 1, ServiceTypeID: 1,
		WidthMM: 500, ThicknessMM: 0.5, LengthMeters: 10, Difficulty: "normal",
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/login", loginRequest{Email: testAdminEmail, Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", rec.Code)
	}
	if got := decodeBody[errorBody](t, rec).Error; got != "invalid_credentials" {
		t.Fatalf("error code = %q", got)
	}

	app.login(t)
	rec = app.do(t, http.MethodGet, "/api/me", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	if sess := decodeBody[auth.Session](t, rec); sess.Email != testAdminEmail || sess.UserID == 0 {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestMeRejectsDeletedUser(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	if _, err := app.store.DB().Exec(`DELETE FROM users WHERE email = ?`, testAdminEmail); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	rec := app.do(t, http.MethodGet, "/api/me", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/admin/quotes", "/api/admin/materials", "/api/admin/dashboard", "/api/me"} {
		if rec := app.do(t, http.MethodGet, path, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s status = %d, want 401", path, rec.Code)
		}
	}

	app.cookie = &http.Cookie{Name: auth.CookieName, Value: "forged"}
	if rec := app.do(t, http.MethodGet, "/api/admin/quotes", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged cookie status = %d, want 401", rec.Code)
	}
}

func TestSubmitQuote(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	customerID := app.createCustomer(t, "Maria Souza")

	rec := app.do(t, http.MethodPost, "/api/admin/quotes", draftRequest{
		CustomerID: customerID,
		Discount:   50,
		Notes:      "Entrega sexta",
		Items:      []quote.ItemFields{calhaItem()},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body = %s", rec.Code, rec.Body.String())
	}
	q := decodeBody[quoteResponse](t, rec)

	wantNumber := fmt.Sprintf("ORC-%d-0001", time.Now().Year())
	if q.QuoteNumber != wantNumber {
		t.Fatalf("quote number = %q, want %q", q.QuoteNumber, wantNumber)
	}
	if q.Status != quote.StatusDraft || len(q.Items) != 1 {
		t.Fatalf("unexpected quote: %+v", q)
	}
	// 500 * 0.5 * 2.7 * 30 / 1000 = 20.25 per metre, times 2.1 and 10 m.
	if q.TotalAmount < 425.2499 || q.TotalAmount > 425.2501 || q.FinalAmount < 375.2499 || q.FinalAmount > 375.2501 {
		t.Fatalf("amounts total=%v final=%v", q.TotalAmount, q.FinalAmount)
	}
	if q.CreatedAt.IsZero() || time.Since(q.CreatedAt) > time.Hour {
		t.Fatalf("created_at = %v, want the stored timestamp", q.CreatedAt)
	}
	if q.StatusLabel != "Rascunho" || q.CustomerName != "Maria Souza" || q.Items[0].ID == 0 {
		t.Fatalf("submit response is missing stored fields: %+v", q)
	}

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/admin/quotes/%d", q.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get quote status = %d", rec.Code)
	}
	got := decodeBody[quoteResponse](t, rec)
	if got.CustomerName != "Maria Souza" || got.StatusLabel != "Rascunho" || got.FinalDisplay != "R$ 375,25" {
		t.Fatalf("unexpected quote response: %+v", got)
	}
	if got.CreatedBy == 0 {
		t.Fatalf("created_by not stamped from session")
	}
	if !got.CreatedAt.Equal(q.CreatedAt) || got.Items[0].ID != q.Items[0].ID {
		t.Fatalf("submit and get responses differ: submit=%+v get=%+v", q.Quote, got.Quote)
	}
}

func TestQuoteFormCarriesDefaultItem(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	rec := app.do(t, http.MethodGet, "/api/admin/quotes/form", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	form := decodeBody[struct {
		DefaultItem quote.ItemFields `json:"default_item"`
		Statuses    []statusOption   `json:"statuses"`
	}](t, rec)

	want := quote.ItemFields{
		ItemType: "Calha", MaterialID: 1, ServiceTypeID: 1,
		WidthMM: 500, ThicknessMM: 0.5, LengthMeters: 1, Difficulty: "normal",
	}
	if form.DefaultItem != want {
		t.Fatalf("default_item = %+v, want %+v", form.DefaultItem, want)
	}
	if len(form.Statuses) != 5 {
		t.Fatalf("statuses = %+v", form.Statuses)
	}
}

func TestSubmitQuoteValidation(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	customerID := app.createCustomer(t, "Maria Souza")

	incomplete := calhaItem()
	incomplete.WidthMM = 0

	tests := []struct {
		name    string
		req     draftRequest
		message string
	}{
		{
			name:    "no customer",
			req:     draftRequest{Items: []quote.ItemFields{calhaItem()}},
			message: "Selecione um cliente e adicione pelo menos um item",
		},
		{
			name:    "no items",
			req:     draftRequest{CustomerID: customerID},
			message: "Selecione um cliente e adicione pelo menos um item",
		},
		{
			name:    "incomplete item",
			req:     draftRequest{CustomerID: customerID, Items: []quote.ItemFields{calhaItem(), incomplete}},
			message: "Item 2 incompleto",
		},
		{
			name:    "negative discount",
			req:     draftRequest{CustomerID: customerID, Discount: -1, Items: []quote.ItemFields{calhaItem()}},
			message: "O desconto não pode ser negativo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/admin/quotes", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if body := decodeBody[errorBody](t, rec); !strings.HasPrefix(body.Message, tt.message) {
				t.Fatalf("message = %q, want prefix %q", body.Message, tt.message)
			}
		})
	}

	quotes, err := app.store.ListQuotes(t.Context(), "")
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(quotes) != 0 {
		t.Fatalf("rejected drafts were persisted: %d quotes", len(quotes))
	}
}

func TestSubmitQuoteUnknownCustomerConflicts(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	rec := app.do(t, http.MethodPost, "/api/admin/quotes", draftRequest{CustomerID: 999, Items: []quote.ItemFields{calhaItem()}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPreviewQuote(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	partial := calhaItem()
	partial.MaterialID = 0

	rec := app.do(t, http.MethodPost, "/api/admin/quotes/preview", draftRequest{
		Discount: 500,
		Items:    []quote.ItemFields{calhaItem(), partial},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[previewResponse](t, rec)

	if len(resp.Items) != 2 || !resp.Items[0].Complete || resp.Items[1].Complete {
		t.Fatalf("unexpected lines: %+v", resp.Items)
	}
	if len(resp.Items[1].Missing) != 1 || resp.Items[1].Missing[0] != "material" {
		t.Fatalf("missing = %v", resp.Items[1].Missing)
	}
	if resp.TotalDisplay != "R$ 425,25" || resp.FinalDisplay != "-R$ 74,75" {
		t.Fatalf("displays total=%q final=%q", resp.TotalDisplay, resp.FinalDisplay)
	}
	if resp.Error == "" {
		t.Fatalf("expected a validation message for a draft without customer")
	}

	quotes, err := app.store.ListQuotes(t.Context(), "")
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(quotes) != 0 {
		t.Fatalf("preview persisted %d quotes", len(quotes))
	}
}

func TestUpdateQuoteStatus(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	customerID := app.createCustomer(t, "Maria Souza")

	rec := app.do(t, http.MethodPost, "/api/admin/quotes", draftRequest{CustomerID: customerID, Items: []quote.ItemFields{calhaItem()}})
	q := decodeBody[quote.Quote](t, rec)
	path := fmt.Sprintf("/api/admin/quotes/%d/status", q.ID)

	rec = app.do(t, http.MethodPatch, path, map[string]string{"status": "approved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[quoteResponse](t, rec); got.Status != quote.StatusApproved || got.StatusLabel != "Aprovado" {
		t.Fatalf("unexpected quote: %+v", got)
	}

	if rec = app.do(t, http.MethodPatch, path, map[string]string{"status": "archived"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status code = %d", rec.Code)
	}
	if rec = app.do(t, http.MethodPatch, "/api/admin/quotes/999/status", map[string]string{"status": "sent"}); rec.Code != http.StatusNotFound {
		t.Fatalf("missing quote code = %d", rec.Code)
	}
}

func TestCatalogDefaultsAndValidation(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	rec := app.do(t, http.MethodPost, "/api/admin/materials", map[string]any{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create material status = %d, body = %s", rec.Code, rec.Body.String())
	}
	m := decodeBody[map[string]any](t, rec)
	if m["name"] != "Novo Material" || m["density"] != 2.7 || m["cost_per_kg"] != 30.0 || m["active"] != true {
		t.Fatalf("unexpected material defaults: %v", m)
	}

	rec = app.do(t, http.MethodPost, "/api/admin/service-types", map[string]any{"difficulty_factor_hard": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero factor status = %d", rec.Code)
	}

	rec = app.do(t, http.MethodPut, "/api/admin/materials/1", map[string]any{"cost_per_kg": 35.5})
	if rec.Code != http.StatusOK {
		t.Fatalf("update material status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[map[string]any](t, rec); got["cost_per_kg"] != 35.5 || got["name"] != "Alumínio" {
		t.Fatalf("unexpected updated material: %v", got)
	}

	if rec = app.do(t, http.MethodPost, "/api/admin/materials", map[string]any{"colour": "red"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d", rec.Code)
	}
}

func TestDeleteReferencedCustomerConflicts(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	customerID := app.createCustomer(t, "Maria Souza")

	if rec := app.do(t, http.MethodPost, "/api/admin/quotes", draftRequest{CustomerID: customerID, Items: []quote.ItemFields{calhaItem()}}); rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", rec.Code)
	}

	rec := app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/customers/%d", customerID), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete status = %d, want 409", rec.Code)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown type", map[string]any{"customer_type": "XX", "full_name": "A", "phone": "1"}},
		{"person without name", map[string]any{"customer_type": "PF", "phone": "1"}},
		{"company without company name", map[string]any{"customer_type": "PJ", "full_name": "A", "phone": "1"}},
		{"missing phone", map[string]any{"customer_type": "PF", "full_name": "A"}},
		{"unknown status", map[string]any{"customer_type": "PF", "full_name": "A", "phone": "1", "status": "vip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := app.do(t, http.MethodPost, "/api/admin/customers", tt.body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
		})
	}

	rec := app.do(t, http.MethodPost, "/api/admin/customers", map[string]any{"customer_type": "PJ", "company_name": "Telhados SA", "phone": "1133334444"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("company status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if c := decodeBody[model.Customer](t, rec); c.Status != model.CustomerPreList || c.DisplayName() != "Telhados SA" {
		t.Fatalf("unexpected customer: %+v", c)
	}
}

func TestPageContent(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/api/pages/inicio", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public page status = %d", rec.Code)
	}
	if got := decodeBody[map[string]string](t, rec); got["hero_title"] != "Calhas e rufos sob medida" {
		t.Fatalf("unexpected page map: %v", got)
	}
	if rec = app.do(t, http.MethodGet, "/api/pages/blog", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown page status = %d", rec.Code)
	}

	app.login(t)
	rec = app.do(t, http.MethodPost, "/api/admin/pages/sobre/content", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add section status = %d, body = %s", rec.Code, rec.Body.String())
	}
	added := decodeBody[model.PageContent](t, rec)
	if !strings.HasPrefix(added.SectionKey, "new_section_") || added.ContentType != "text" || added.OrderIndex != 1 {
		t.Fatalf("unexpected new section: %+v", added)
	}

	rec = app.do(t, http.MethodPut, fmt.Sprintf("/api/admin/pages/sobre/content/%d", added.ID), map[string]any{
		"section_key": "history", "content_type": "html", "content_value": "<p>Desde 1998</p>",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update section status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = app.do(t, http.MethodPut, "/api/admin/pages/sobre/content", map[string]any{
		"section_key": "info_title", "content_type": "text", "content_value": "Nossa história",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save section status = %d, body = %s", rec.Code, rec.Body.String())
	}

	app.cookie = nil
	got := decodeBody[map[string]string](t, app.do(t, http.MethodGet, "/api/pages/sobre", nil))
	if got["history"] != "<p>Desde 1998</p>" || got["info_title"] != "Nossa história" {
		t.Fatalf("unexpected page map: %v", got)
	}
}

func TestContactSubmission(t *testing.T) {
	app := newTestApp(t)

	valid := contactRequest{Name: "João", Email: "joao@example.com", Phone: "11988887777", Message: "Preciso de um orçamento"}
	tooLong := valid
	tooLong.Message = strings.Repeat("é", maxContactMessage+1)
	missingPhone := valid
	missingPhone.Phone = " "

	tests := []struct {
		name string
		req  contactRequest
		want int
	}{
		{"valid", valid, http.StatusCreated},
		{"message at limit", contactRequest{Name: "A", Email: "a@b.c", Phone: "1", Message: strings.Repeat("é", maxContactMessage)}, http.StatusCreated},
		{"message too long", tooLong, http.StatusBadRequest},
		{"missing phone", missingPhone, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := app.do(t, http.MethodPost, "/api/contact", tt.req); rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	app.login(t)
	contacts := decodeBody[[]model.ContactSubmission](t, app.do(t, http.MethodGet, "/api/admin/contacts?status=unread&limit=1", nil))
	if len(contacts) != 1 || contacts[0].Read {
		t.Fatalf("unexpected contacts: %+v", contacts)
	}

	if rec := app.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/contacts/%d/read", contacts[0].ID), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("mark read status = %d", rec.Code)
	}
	dash := decodeBody[model.Dashboard](t, app.do(t, http.MethodGet, "/api/admin/dashboard", nil))
	if dash.UnreadContacts != 1 {
		t.Fatalf("unread contacts = %d, want 1", dash.UnreadContacts)
	}

	if rec := app.do(t, http.MethodGet, "/api/admin/contacts?limit=-1", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("negative limit status = %d", rec.Code)
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func (a *testApp) upload(t *testing.T, path string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.bin")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestUploadAndProjectLifecycle(t *testing.T) {
	app := newTestApp(t)

	if rec := app.upload(t, "/api/admin/uploads/project-images", pngHeader); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous admin upload status = %d", rec.Code)
	}

	app.login(t)
	if rec := app.upload(t, "/api/admin/uploads/project-images", []byte("just some text")); rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("text upload status = %d", rec.Code)
	}
	if rec := app.upload(t, "/api/admin/uploads/avatars", pngHeader); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown bucket status = %d", rec.Code)
	}

	rec := app.upload(t, "/api/admin/uploads/project-images", pngHeader)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}
	uploaded := decodeBody[map[string]string](t, rec)
	if !strings.HasPrefix(uploaded["url"], "/uploads/project-images/") || !strings.HasSuffix(uploaded["url"], ".png") {
		t.Fatalf("unexpected upload url: %q", uploaded["url"])
	}
	onDisk := filepath.Join(app.uploadDir, filepath.FromSlash(uploaded["key"]))
	if data, err := os.ReadFile(onDisk); err != nil || !bytes.Equal(data, pngHeader) {
		t.Fatalf("stored blob = %q, err = %v", data, err)
	}
	if rec := app.do(t, http.MethodGet, uploaded["url"], nil); rec.Code != http.StatusOK {
		t.Fatalf("serve upload status = %d", rec.Code)
	}

	if rec := app.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "Calha", "category": "calhas"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("project without images status = %d", rec.Code)
	}
	rec = app.do(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title": "Calha residencial", "category": "calhas", "location": "Campinas", "images": []string{uploaded["url"]},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project status = %d, body = %s", rec.Code, rec.Body.String())
	}
	project := decodeBody[model.Project](t, rec)

	app.cookie = nil
	listed := decodeBody[[]model.Project](t, app.do(t, http.MethodGet, "/api/projects?category=calhas&search=campinas", nil))
	if len(listed) != 1 || listed[0].ID != project.ID {
		t.Fatalf("unexpected public list: %+v", listed)
	}

	app.login(t)
	if rec := app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/projects/%d", project.ID), nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete project status = %d", rec.Code)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("project image still on disk: %v", err)
	}
	if rec := app.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted project status = %d", rec.Code)
	}
}

func TestPublicContactImageUpload(t *testing.T) {
	app := newTestApp(t)

	rec := app.upload(t, "/api/contact/images", pngHeader)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if url := decodeBody[map[string]string](t, rec)["url"]; !strings.HasPrefix(url, "/uploads/contact-images/") {
		t.Fatalf("unexpected url %q", url)
	}
}
