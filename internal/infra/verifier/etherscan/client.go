// Package etherscan implements the abiresolve.Verifier port against an
// Etherscan-compatible contract verification API.
package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/txlens/txlens/internal/abiresolve"

	"github.com/hashicorp/go-retryablehttp"
)

// client talks to an Etherscan-style API. The v2 API multiplexes every chain
// through one domain, selected by the chainid query parameter.
type client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	apiKey     string
}

var _ abiresolve.Verifier = (*client)(nil)

// NewClient creates a verifier client. The API key must be non-empty; callers
// without a key should not construct a client at all (the resolver treats a
// nil verifier as "credential not configured").
func NewClient(httpClient *retryablehttp.Client, baseURL, apiKey string) (*client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("verification service API key is required")
	}

	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}, nil
}

// apiResponse is the Etherscan envelope: status "1" means the request
// succeeded and result carries the payload; status "0" carries the reason in
// result or message.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (c *client) endpoint(chainID uint64, address, action string) string {
	q := url.Values{}
	q.Set("chainid", fmt.Sprintf("%d", chainID))
	q.Set("module", "contract")
	q.Set("action", action)
	q.Set("address", address)
	q.Set("apikey", c.apiKey)
	return fmt.Sprintf("%s/api?%s", c.baseURL, q.Encode())
}

func (c *client) get(ctx context.Context, endpoint string) (apiResponse, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return apiResponse{}, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return apiResponse{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return apiResponse{}, err
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiResponse{}, fmt.Errorf("unexpected verification service response: %w", err)
	}

	return parsed, nil
}

// FetchABI implements abiresolve.Verifier. An unverified contract is reported
// as a successful lookup with Verified=false; every other non-success status
// is an error carrying the service-reported reason.
func (c *client) FetchABI(ctx context.Context, chainID uint64, address string) (abiresolve.VerifiedABI, error) {
	res, err := c.get(ctx, c.endpoint(chainID, address, "getabi"))
	if err != nil {
		return abiresolve.VerifiedABI{}, err
	}

	var result string
	if err := json.Unmarshal(res.Result, &result); err != nil {
		return abiresolve.VerifiedABI{}, fmt.Errorf("unexpected getabi result shape: %w", err)
	}

	if res.Status != "1" {
		// Etherscan reports unverified contracts with status "0" and a fixed
		// result string; that is an answer, not a transport failure.
		if strings.Contains(strings.ToLower(result), "not verified") {
			return abiresolve.VerifiedABI{Verified: false, Message: result}, nil
		}
		return abiresolve.VerifiedABI{}, fmt.Errorf("verification service error: %s", firstNonEmpty(result, res.Message))
	}

	return abiresolve.VerifiedABI{Verified: true, ABIJSON: result}, nil
}

// sourceCodeEntry is one element of the getsourcecode result array.
type sourceCodeEntry struct {
	SourceCode   string `json:"SourceCode"`
	ContractName string `json:"ContractName"`
}

// FetchSource implements abiresolve.Verifier.
func (c *client) FetchSource(ctx context.Context, chainID uint64, address string) (string, error) {
	res, err := c.get(ctx, c.endpoint(chainID, address, "getsourcecode"))
	if err != nil {
		return "", err
	}

	if res.Status != "1" {
		return "", fmt.Errorf("verification service error: %s", res.Message)
	}

	var entries []sourceCodeEntry
	if err := json.Unmarshal(res.Result, &entries); err != nil {
		return "", fmt.Errorf("unexpected getsourcecode result shape: %w", err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("verification service returned no source entries")
	}

	return entries[0].SourceCode, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
