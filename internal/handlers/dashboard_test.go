package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/diewo77/go-complaints/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	h := newHarness(t)
	handler := h.dashboardHandler()
	cases := []struct {
		name string
		p    auth.Principal
		want string
	}{
		{"anonymous", auth.Anonymous, "/login"},
		{"student", auth.Principal{ID: 7, StudentID: "S7"}, "/student/dashboard"},
		{"admin", auth.Principal{ID: 1, StudentID: "admin001", IsAdmin: true}, "/admin/dashboard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(handler.Root, request(http.MethodGet, "/", tc.p, nil))
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.want, rec.Header().Get("Location"))
		})
	}

	rec := serve(handler.Root, request(http.MethodGet, "/nope", auth.Anonymous, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentDashboard_OnlyOwnComplaints(t *testing.T) {
	h := newHarness(t)
	s1 := h.student(t, "S1")
	s2 := h.student(t, "S2")
	h.submit(t, s1, "Broken light", "maintenance")
	h.submit(t, s2, "Noisy neighbours", "hostel")

	rec := serve(h.dashboardHandler().Student, request(http.MethodGet, "/student/dashboard", s1, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Broken light")
	assert.NotContains(t, rec.Body.String(), "Noisy neighbours")
}

func TestAdminDashboard(t *testing.T) {
	h := newHarness(t)
	s1 := h.student(t, "S1")
	admin := h.admin(t)
	h.submit(t, s1, "Broken light", "maintenance")
	h.submit(t, s1, "Wifi down", "hostel")
	c := h.submit(t, s1, "Light flickers", "hostel")
	_, err := h.complaints.UpdateStatus(t.Context(), c.ID, models.StatusResolved, "done")
	require.NoError(t, err)
	handler := h.dashboardHandler()

	t.Run("html", func(t *testing.T) {
		rec := serve(handler.Admin, request(http.MethodGet, "/admin/dashboard", admin, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Broken light")
		assert.Contains(t, body, "Wifi down")
		assert.Contains(t, body, "Student S1")
	})

	t.Run("filters combine", func(t *testing.T) {
		rec := serve(handler.Admin, asJSON(request(http.MethodGet, "/admin/dashboard?category=hostel&search=LIGHT", admin, nil)))
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Complaints []models.Complaint     `json:"complaints"`
			Categories []string               `json:"categories"`
			Counts     []services.StatusCount `json:"counts"`
			Total      int64                  `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Complaints, 1)
		assert.Equal(t, "Light flickers", body.Complaints[0].Title)
		assert.Equal(t, []string{"hostel", "maintenance"}, body.Categories)
		assert.EqualValues(t, 3, body.Total)
		assert.Len(t, body.Counts, len(models.Statuses))
	})

	t.Run("unknown status is ignored", func(t *testing.T) {
		rec := serve(handler.Admin, asJSON(request(http.MethodGet, "/admin/dashboard?status=bogus", admin, nil)))
		var body struct {
			Complaints []models.Complaint `json:"complaints"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Complaints, 3)
	})

	t.Run("students denied", func(t *testing.T) {
		rec := serve(handler.Admin, request(http.MethodGet, "/admin/dashboard", s1, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/student/dashboard", rec.Header().Get("Location"))
	})
}
