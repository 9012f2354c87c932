package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dominion116/StyleHub/internal/service"
)

// Client 呼叫結算服務執行對外轉帳
// 結算端負責實際的資金移轉，這裡只關心成功與否
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ service.ValueTransferer = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type transferRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// Transfer 對結算服務發起轉帳，非2xx一律視為失敗
func (c *Client) Transfer(ctx context.Context, to string, amount uint64) error {
	body, err := json.Marshal(transferRequest{To: to, Amount: amount})
	if err != nil {
		return fmt.Errorf("encoding transfer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending transfer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("settlement rejected transfer to %s: status %d: %s", to, resp.StatusCode, detail)
	}
	return nil
}
