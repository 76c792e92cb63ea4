// Package classify talks to the food-classification endpoint. The endpoint is
// an external collaborator and an opaque black box to this service: it takes
// a base64 image payload and answers with a condition, a food type, dietary
// restrictions and a suggested item name. A static stub is provided for tests
// and offline runs.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Result is the classification endpoint's answer.
type Result struct {
	Condition    string   `json:"condition"`
	FoodType     string   `json:"food_type"`
	Restrictions []string `json:"restrictions"`
	Reason       string   `json:"reason"`
	ItemName     string   `json:"item_name"`
}

// Classifier is the contract the inventory service depends on.
type Classifier interface {
	// Classify submits a base64-encoded image and returns the endpoint's
	// verdict. Implementations must honor ctx for cancellation.
	Classify(ctx context.Context, imageBase64 string) (*Result, error)
}

// HTTPClient posts images to a classify-base64 endpoint over HTTP.
type HTTPClient struct {
	// BaseURL is the endpoint root, e.g. "http://localhost:8000".
	BaseURL string
	// Client is the underlying HTTP client; a 30s-timeout default is used
	// when nil (model inference is slow).
	Client *http.Client
}

// NewHTTPClient returns a client for the given endpoint root.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Classify implements Classifier.
func (c *HTTPClient) Classify(ctx context.Context, imageBase64 string) (*Result, error) {
	body, err := json.Marshal(map[string]string{"image": imageBase64})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/classify-base64/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classify: endpoint returned %s", resp.Status)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("classify: decoding response: %w", err)
	}
	return &out, nil
}

// Stub is a canned Classifier for tests and offline development.
type Stub struct {
	Result Result
	Err    error
}

// Classify implements Classifier with the canned result.
func (s Stub) Classify(context.Context, string) (*Result, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	r := s.Result
	return &r, nil
}

// DisplayCondition maps the endpoint's condition vocabulary onto the display
// values the dashboards use. Unknown values pass through unchanged.
func DisplayCondition(condition string) string {
	switch strings.ToLower(condition) {
	case "fresh":
		return "Good"
	case "spoiled":
		return "Waste"
	case "check":
		return "Critical"
	default:
		return condition
	}
}
