package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/services"
)

func newFulfillRouter(f FulfillmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := newTestHandlers(f, nil, nil, nil, nil)
	r := gin.New()
	r.GET("/requests", h.ListRequests)
	r.GET("/requests/:id", h.GetRequest)
	r.POST("/requests/:id/requirements/:line/toggle", h.ToggleRequirement)
	r.POST("/requests/:id/accept", h.AcceptRequest)
	return r
}

func TestListRequests_OK(t *testing.T) {
	r := newFulfillRouter(stubFulfillSvc{list: func(context.Context) ([]domain.Request, error) {
		return []domain.Request{{ID: 1, Name: "The Osborn"}}, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []domain.Request
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 1 || got[0].Name != "The Osborn" {
		t.Fatalf("body = %v", got)
	}
}

func TestGetRequest_BadID(t *testing.T) {
	r := newFulfillRouter(stubFulfillSvc{get: func(context.Context, int) (*services.RequestState, error) {
		t.Fatalf("service must not be called for a non-integer id")
		return nil, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q", er.Code)
	}
}

// Unknown and completed ids answer 404 with the listing redirect so clients
// fall back instead of rendering an error state.
func TestGetRequest_FailOpenRedirect(t *testing.T) {
	for _, svcErr := range []error{services.ErrRequestNotFound, services.ErrRequestCompleted} {
		r := newFulfillRouter(stubFulfillSvc{get: func(context.Context, int) (*services.RequestState, error) {
			return nil, svcErr
		}})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/9", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("%v: status = %d, want 404", svcErr, w.Code)
		}
		var er ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
			t.Fatalf("json: %v", err)
		}
		if er.Redirect != "/requests" {
			t.Fatalf("%v: redirect = %q, want /requests", svcErr, er.Redirect)
		}
	}
}

func TestToggleRequirement_OK(t *testing.T) {
	var gotID, gotLine int
	r := newFulfillRouter(stubFulfillSvc{toggle: func(_ context.Context, id, line int) (*services.RequestState, error) {
		gotID, gotLine = id, line
		return &services.RequestState{
			Request:        domain.Request{ID: id, Requirements: []domain.Requirement{{ID: line, Fulfilled: true}}},
			FullyFulfilled: false,
		}, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/3/requirements/2/toggle", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotID != 3 || gotLine != 2 {
		t.Fatalf("service called with id=%d line=%d", gotID, gotLine)
	}
	var st RequestStateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !st.Request.Requirements[0].Fulfilled {
		t.Fatalf("toggled line not reflected: %+v", st)
	}
}

func TestToggleRequirement_LineNotFound(t *testing.T) {
	r := newFulfillRouter(stubFulfillSvc{toggle: func(context.Context, int, int) (*services.RequestState, error) {
		return nil, services.ErrLineNotFound
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/1/requirements/9/toggle", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAcceptRequest_ReturnsRedirectContract(t *testing.T) {
	r := newFulfillRouter(stubFulfillSvc{accept: func(_ context.Context, id int) (*services.AcceptResult, error) {
		return &services.AcceptResult{
			RequestID:          id,
			UpcomingDeliveries: 3,
			RedirectTo:         "/dashboard",
			RedirectAfter:      3 * time.Second,
			Message:            "Delivery Added!",
		}, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/1/accept", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res AcceptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("json: %v", err)
	}
	if res.RedirectTo != "/dashboard" || res.RedirectAfterMS != 3000 {
		t.Fatalf("redirect contract = %q after %dms", res.RedirectTo, res.RedirectAfterMS)
	}
	if res.Message != "Delivery Added!" || res.UpcomingDeliveries != 3 {
		t.Fatalf("body = %+v", res)
	}
}

func TestAcceptRequest_Unfulfilled409(t *testing.T) {
	r := newFulfillRouter(stubFulfillSvc{accept: func(context.Context, int) (*services.AcceptResult, error) {
		return nil, services.ErrNotFulfilled
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/1/accept", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeConflict {
		t.Fatalf("code = %q", er.Code)
	}
}
