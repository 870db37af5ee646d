package authservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pixshare/image-service/log"
	"github.com/pixshare/image-service/traceutils"
)

// Client calls the auth service to resolve user ids to display names. The
// call is authenticated with a shared service secret, separate from end-user
// authentication.
type Client struct {
	endpoint string
	secret   string

	client *http.Client
}

func New(endpoint, secret string) *Client {
	return &Client{
		endpoint: endpoint,
		secret:   secret,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type userNamesRequest struct {
	UserIDs []int64 `json:"userIds"`
}

type userNamesResponse struct {
	Names map[string]string `json:"names"`
}

// GetUserNames resolves a batch of user ids in a single call and returns a
// map from each resolved id to its display name.
func (c *Client) GetUserNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	body, err := json.Marshal(userNamesRequest{UserIDs: userIDs})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Secret", c.secret)

	reqDump := traceutils.DumpRequest(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fail to call auth service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("unexpected response from auth service", log.SourceAuthService,
			zap.String("request", reqDump),
			zap.String("response", traceutils.DumpResponse(resp)))
		return nil, fmt.Errorf("auth service responded with status %d", resp.StatusCode)
	}

	var result userNamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("fail to decode auth service response: %w", err)
	}

	names := make(map[int64]string, len(result.Names))
	for id, name := range result.Names {
		userID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in auth service response", id)
		}
		names[userID] = name
	}

	return names, nil
}
