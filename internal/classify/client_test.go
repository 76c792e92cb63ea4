package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_Classify(t *testing.T) {
	var gotPath, gotImage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		gotImage = body["image"]

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Result{
			Condition:    "fresh",
			FoodType:     "Fruits & Vegetables",
			Restrictions: []string{"Vegan"},
			Reason:       "ripe banana",
			ItemName:     "Banana",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/") // trailing slash is normalized away
	res, err := c.Classify(context.Background(), "aGVsbG8=")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if gotPath != "/classify-base64/" {
		t.Fatalf("posted to %q, want /classify-base64/", gotPath)
	}
	if gotImage != "aGVsbG8=" {
		t.Fatalf("image payload = %q", gotImage)
	}
	if res.ItemName != "Banana" || res.Condition != "fresh" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestHTTPClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	if _, err := c.Classify(context.Background(), "x"); err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}
}

func TestHTTPClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{{{`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	if _, err := c.Classify(context.Background(), "x"); err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPClient(srv.URL)
	if _, err := c.Classify(ctx, "x"); err == nil {
		t.Fatalf("expected an error for a cancelled context")
	}
}

func TestDisplayCondition(t *testing.T) {
	cases := map[string]string{
		"fresh":   "Good",
		"Fresh":   "Good",
		"spoiled": "Waste",
		"check":   "Critical",
		"odd":     "odd", // unknown values pass through
	}
	for in, want := range cases {
		if got := DisplayCondition(in); got != want {
			t.Errorf("DisplayCondition(%q) = %q, want %q", in, got, want)
		}
	}
}
