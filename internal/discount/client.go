package discount

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"product-service/internal/entity"
)

// DefaultURL serves the full list of discount rules.
const DefaultURL = "https://64e7edd9b0fd9648b79066f8.mockapi.io/api/v1/discounts/apply"

// ErrRuleNotFound is returned when no rule matches the requested discount type.
var ErrRuleNotFound = errors.New("discount rule not found")

// LookupError reports a failed discount lookup.
type LookupError struct {
	DiscountType string
	Err          error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("discount lookup for type %q: %v", e.DiscountType, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Client fetches discount rules from the external discount API.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a Client for url. A nil httpClient uses http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, httpClient: httpClient}
}

// FetchDiscountInfo fetches all rules and returns the first whose id equals discountType.
func (c *Client) FetchDiscountInfo(ctx context.Context, discountType string) (*entity.DiscountRule, error) {
	rules, err := c.fetchRules(ctx)
	if err != nil {
		return nil, &LookupError{DiscountType: discountType, Err: err}
	}

	for i := range rules {
		if rules[i].ID == discountType {
			return &rules[i], nil
		}
	}

	return nil, &LookupError{DiscountType: discountType, Err: ErrRuleNotFound}
}

func (c *Client) fetchRules(ctx context.Context) ([]entity.DiscountRule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var rules []entity.DiscountRule
	if err := json.NewDecoder(resp.Body).Decode(&rules); err != nil {
		return nil, fmt.Errorf("decode discount rules: %w", err)
	}

	return rules, nil
}
