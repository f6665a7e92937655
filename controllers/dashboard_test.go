package controllers

import (
	"net/http"
	"testing"

	"msilva-backend/models"
	"msilva-backend/services"
)

func TestGetDashboardOverview(t *testing.T) {
	db := useTestDB(t)
	db.Create(&models.Client{Name: "Marta"})
	db.Create(&models.Client{Name: "Rui"})

	r := newTestRouter()
	r.GET("/dashboard", GetDashboardOverview)
	w := doJSON(t, r, http.MethodGet, "/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
	overview := decode[services.DashboardOverview](t, w)
	if overview.TotalClients != 2 {
		t.Fatalf("expected 2 clients, got %d", overview.TotalClients)
	}
	if n, ok := overview.ProposalsByStatus[models.ProposalDraft]; !ok || n != 0 {
		t.Fatalf("expected zeroed draft count, got %v", overview.ProposalsByStatus)
	}
}
