package lc_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultGraphqlURL = "https://leetcode.com/graphql"
	maxAvatarBytes    = 2 << 20
)

// Executor runs a single GraphQL query and decodes its data object into result.
type Executor interface {
	Execute(ctx context.Context, op, query string, result any) error
}

type graphqlPayload struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type Client struct {
	url        string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

func NewClient(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultGraphqlURL
	}
	c := &Client{url: url, httpClient: &http.Client{}, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute makes exactly one attempt; retries are up to the caller.
func (c *Client) Execute(ctx context.Context, op, query string, result any) error {
	start := time.Now()
	log := c.log.WithField("op", op)

	requestBody, err := json.Marshal(graphqlPayload{Query: query})
	if err != nil {
		return decodeError(op, err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(requestBody))
	if err != nil {
		return transportError(op, err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		log.WithError(err).Warn("graphql request failed")
		return transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return transportError(op, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var envelope graphqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return decodeError(op, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		if len(envelope.Errors) > 0 {
			return decodeError(op, fmt.Errorf("graphql: %s", envelope.Errors[0].Message))
		}
		return decodeError(op, errors.New("response has no data"))
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return decodeError(op, err)
	}

	log.WithField("duration", time.Since(start)).Debug("graphql request done")
	return nil
}

type Avatar struct {
	URL         string
	ContentType string
	Data        []byte
}

func (c *Client) FetchAvatar(ctx context.Context, url string) (*Avatar, error) {
	const op = "avatar"
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, transportError(op, err)
	}
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, transportError(op, fmt.Errorf("unexpected status %s", resp.Status))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarBytes))
	if err != nil {
		return nil, transportError(op, err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Avatar{URL: url, ContentType: contentType, Data: data}, nil
}

func makeGraphqlRequest[Result any](ctx context.Context, ex Executor, op string, query string) (*Result, error) {
	result := new(Result)
	if err := ex.Execute(ctx, op, query, result); err != nil {
		return nil, err
	}
	return result, nil
}
