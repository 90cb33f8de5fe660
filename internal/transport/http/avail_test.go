package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/cowguru2000/scili-dvds/internal/app"
)

type fakeAvailabilityService struct {
	result app.CheckResult
	err    error

	checkedWith []string
	saved       []app.CheckResult
}

func (f *fakeAvailabilityService) Check(ctx context.Context, callNumbers []string) (app.CheckResult, error) {
	f.checkedWith = callNumbers
	return f.result, f.err
}

func (f *fakeAvailabilityService) SaveResolved(res app.CheckResult) {
	f.saved = append(f.saved, res)
}

func TestHandleAvail_ReturnsMap(t *testing.T) {
	t.Parallel()

	svc := &fakeAvailabilityService{
		result: app.CheckResult{
			Availability:  map[string]bool{"ABC123": true, "XYZ999": false},
			NewlyResolved: []string{"XYZ999"},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/avail?callnos=ABC123&callnos=XYZ999", nil)
	rec := httptest.NewRecorder()
	HandleAvail(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !reflect.DeepEqual(svc.checkedWith, []string{"ABC123", "XYZ999"}) {
		t.Fatalf("expected raw callnos passed through, got %v", svc.checkedWith)
	}

	var got map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !reflect.DeepEqual(got, svc.result.Availability) {
		t.Fatalf("expected %v, got %v", svc.result.Availability, got)
	}

	if len(svc.saved) != 1 {
		t.Fatalf("expected one SaveResolved call, got %d", len(svc.saved))
	}
	if !reflect.DeepEqual(svc.saved[0], svc.result) {
		t.Fatalf("expected SaveResolved with the batch result, got %+v", svc.saved[0])
	}
}

func TestHandleAvail_EmptyCallnos(t *testing.T) {
	t.Parallel()

	svc := &fakeAvailabilityService{
		result: app.CheckResult{Availability: map[string]bool{}},
	}

	req := httptest.NewRequest(http.MethodGet, "/avail", nil)
	rec := httptest.NewRecorder()
	HandleAvail(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{}\n" {
		t.Fatalf("expected empty object, got %q", body)
	}
}

func TestHandleAvail_CheckError(t *testing.T) {
	t.Parallel()

	svc := &fakeAvailabilityService{err: errors.New("boom")}

	req := httptest.NewRequest(http.MethodGet, "/avail?callnos=ABC123", nil)
	rec := httptest.NewRecorder()
	HandleAvail(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if len(svc.saved) != 0 {
		t.Fatalf("expected no SaveResolved call on error")
	}
}

func TestHandleAvail_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	svc := &fakeAvailabilityService{}

	req := httptest.NewRequest(http.MethodPost, "/avail", nil)
	rec := httptest.NewRecorder()
	HandleAvail(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
