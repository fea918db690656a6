// Package payout wraps the external UPI payout API. The API is opaque:
// one GET with the destination and amount templated into the URL, one
// success/failure outcome, no retry state carried across calls.
package payout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// Client is overridable in tests.
var Client = &http.Client{Timeout: 15 * time.Second}

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Send pays amount to the UPI destination. A nil return means the API
// reported success.
func Send(upiID string, amount float64) error {
	template := os.Getenv("PAYOUT_API_URL")
	if template == "" {
		return fmt.Errorf("payout API not configured")
	}

	endpoint := strings.NewReplacer(
		"{upi_id}", url.QueryEscape(upiID),
		"{amount}", fmt.Sprintf("%.2f", amount),
	).Replace(template)

	return retry.Do(
		func() error {
			resp, err := Client.Get(endpoint)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("payout API returned %d", resp.StatusCode)
			}
			var body apiResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return err
			}
			if body.Status != "success" {
				return fmt.Errorf("payout failed: %s", body.Message)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
}
