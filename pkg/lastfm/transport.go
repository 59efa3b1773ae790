package lastfm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxBodySize bounds the response body read from the service.
const maxBodySize = 8 << 20

// buildURL assembles the request URL for method with the given params.
//
// Absent params are dropped. The method name, API key and the JSON
// format flag are always present. Values are URL-encoded.
func (c *Client) buildURL(method string, params Params) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: bad base URL: %v", ErrInvalidConfig, err)
	}

	values := url.Values{}
	params.encode(values)
	values.Set("method", method)
	values.Set("api_key", c.apiKey)
	values.Set("format", "json")

	u.RawQuery = values.Encode()
	return u.String(), nil
}

// call makes a single GET request to the Last.fm API and returns the
// decoded JSON body.
//
// It handles:
// - Query construction from the method name and params
// - Response decoding (JSON)
// - Service-reported errors (the "error" field), returned as *Error
// - Network, status and decoding failures, returned as *TransportError
// - Context cancellation
//
// No retry is attempted.
func (c *Client) call(ctx context.Context, method string, params Params) (map[string]any, error) {
	reqURL, err := c.buildURL(method, params)
	if err != nil {
		return nil, err
	}

	c.logDebugf("lastfm: calling %s", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &TransportError{Method: method, Err: fmt.Errorf("http request failed: %w", err)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
	if err != nil {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	// Error envelopes arrive with 200 as well as 4xx statuses, so the body
	// is inspected before the status code.
	data, decodeErr := decodeBody(body)
	if decodeErr == nil {
		if apiErr := errorFromBody(data); apiErr != nil {
			c.logDebugf("lastfm: %s failed: %v", method, apiErr)
			return nil, apiErr
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}
	if decodeErr != nil {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse JSON response: %w", decodeErr)}
	}

	c.logDebugf("lastfm: %s succeeded", method)
	return data, nil
}

// decodeBody parses a JSON object. Numbers are kept as json.Number so large
// counts survive without float rounding.
func decodeBody(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return data, nil
}

// errorFromBody returns the service error carried by body, or nil when the
// "error" field is absent or zero.
func errorFromBody(data map[string]any) *Error {
	obj := object(data)
	if !obj.has("error") {
		return nil
	}
	code := obj.integer("error")
	if code == 0 {
		return nil
	}
	return newError(code, obj.str("message"))
}
