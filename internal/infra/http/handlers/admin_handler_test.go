package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	if lead.ID == "" {
		lead.ID = "lead-123"
	}
	if lead.Status == "" {
		lead.Status = entity.StatusNew
	}
	return args.Error(0)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateFields(ctx context.Context, id string, update entity.LeadUpdate) (*entity.Lead, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newAdminRouter(repo *MockLeadRepository) http.Handler {
	h := NewAdminLeadHandler(repo)
	r := chi.NewRouter()
	r.Route("/api/admin/leads", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/export", h.HandleExportCSV)
		r.Patch("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
	return r
}

// ============ TESTES DO ADMIN HANDLER ============

func TestAdminList_ReturnsLeadsNewestFirst(t *testing.T) {
	repo := new(MockLeadRepository)

	now := time.Now()
	leads := []*entity.Lead{
		{ID: "l2", Email: "b@x.com", Source: entity.SourceForm, Status: entity.StatusNew, CreatedAt: now},
		{ID: "l1", Email: "a@x.com", Source: entity.SourceChat, Status: entity.StatusQualified, CreatedAt: now.Add(-time.Hour)},
	}
	repo.On("List", mock.Anything).Return(leads, nil)

	req := httptest.NewRequest("GET", "/api/admin/leads/", nil)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []*entity.Lead
	err := json.Unmarshal(rec.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	// A ordem do repositório (created_at DESC) é repassada intacta
	assert.Equal(t, "l2", got[0].ID)
	assert.Equal(t, "l1", got[1].ID)
}

func TestAdminList_DatabaseError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest("GET", "/api/admin/leads/", nil)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminUpdate_Status(t *testing.T) {
	repo := new(MockLeadRepository)

	updated := &entity.Lead{ID: "l1", Email: "a@x.com", Status: entity.StatusQualified}
	repo.On("UpdateFields", mock.Anything, "l1", mock.Anything).Return(updated, nil)

	body := strings.NewReader(`{"status":"qualified"}`)
	req := httptest.NewRequest("PATCH", "/api/admin/leads/l1", body)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got entity.Lead
	json.Unmarshal(rec.Body.Bytes(), &got)
	assert.Equal(t, entity.StatusQualified, got.Status)

	repo.AssertCalled(t, "UpdateFields", mock.Anything, "l1", mock.MatchedBy(func(u entity.LeadUpdate) bool {
		return u.Status != nil && *u.Status == entity.StatusQualified
	}))
}

func TestAdminUpdate_InvalidStatus(t *testing.T) {
	repo := new(MockLeadRepository)

	body := strings.NewReader(`{"status":"vendido"}`)
	req := httptest.NewRequest("PATCH", "/api/admin/leads/l1", body)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Enum inválido nem chega ao banco
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdate_NotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("UpdateFields", mock.Anything, "ghost", mock.Anything).Return(nil, entity.ErrLeadNotFound)

	body := strings.NewReader(`{"status":"contacted"}`)
	req := httptest.NewRequest("PATCH", "/api/admin/leads/ghost", body)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDelete_Success(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Delete", mock.Anything, "l1").Return(nil)

	req := httptest.NewRequest("DELETE", "/api/admin/leads/l1", nil)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertCalled(t, "Delete", mock.Anything, "l1")
}

func TestAdminDelete_NotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Delete", mock.Anything, "ghost").Return(entity.ErrLeadNotFound)

	req := httptest.NewRequest("DELETE", "/api/admin/leads/ghost", nil)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminExportCSV_EscapesSeparators(t *testing.T) {
	repo := new(MockLeadRepository)

	leads := []*entity.Lead{
		{
			ID:        "l1",
			Name:      "Ana Souza",
			Email:     "ana@x.com",
			Company:   "Padaria, Pão & Cia",
			Objective: `disse "quero automatizar tudo"`,
			Score:     80,
			Status:    entity.StatusQualified,
			Source:    entity.SourceChat,
			CreatedAt: time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		},
	}
	repo.On("List", mock.Anything).Return(leads, nil)

	req := httptest.NewRequest("GET", "/api/admin/leads/export", nil)
	rec := httptest.NewRecorder()
	newAdminRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	out := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Nome,Email,Telefone,Empresa,Objetivo,Score,Status,Fonte,Data", lines[0])

	// Vírgula no campo: precisa sair entre aspas, não quebrar a coluna
	assert.Contains(t, out, `"Padaria, Pão & Cia"`)
	// Aspas no campo: escapadas em dobro
	assert.Contains(t, out, `"disse ""quero automatizar tudo"""`)
}
