package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"colchester-plumber-api/internal/domain"

	"github.com/spf13/cobra"
)

// send-test: post a sample quote request to a running API.
func sendTestCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
		quote   domain.QuoteRequest
	)

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Submit a sample quote request to a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			status, body, err := postQuote(ctx, http.DefaultClient, url, quote)
			if err != nil {
				return err
			}
			if status < 200 || status > 299 {
				return fmt.Errorf("email API test failed: %d %s", status, body)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Email API test successful: %s\n", body)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/api/send-email", "quote endpoint")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	cmd.Flags().StringVar(&quote.Name, "name", "Test User", "customer name")
	cmd.Flags().StringVar(&quote.Email, "email", "test@example.com", "customer email")
	cmd.Flags().StringVar(&quote.Phone, "phone", "01206 123456", "customer phone")
	cmd.Flags().StringVar(&quote.Postcode, "postcode", "CO1 1AA", "customer postcode")
	cmd.Flags().StringVar(&quote.Issue, "issue", "This is a test email from the development environment.", "issue description")
	return cmd
}

func postQuote(ctx context.Context, client *http.Client, url string, quote domain.QuoteRequest) (int, string, error) {
	payload, err := json.Marshal(quote)
	if err != nil {
		return 0, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("email API test error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(bytes.TrimSpace(body)), nil
}
