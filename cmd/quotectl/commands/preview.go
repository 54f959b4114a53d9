package commands

import (
	"fmt"
	"time"

	"colchester-plumber-api/config"
	"colchester-plumber-api/pkg/email"

	"github.com/spf13/cobra"
)

// preview <notification|autoreply>: render an email with sample data.
func previewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:       "preview <notification|autoreply>",
		Short:     "Render the business notification or the auto-reply to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"notification", "autoreply"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			msg, err := renderPreview(args[0], cfg, time.Now().In(cfg.Location()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "To: %s\nFrom: %s\n", msg.To, msg.From)
			if msg.ReplyTo != nil {
				fmt.Fprintf(out, "Reply-To: %s\n", msg.ReplyTo)
			}
			fmt.Fprintf(out, "Subject: %s\n\n", msg.Subject)

			switch format {
			case "html":
				fmt.Fprintln(out, msg.HTML)
			case "text":
				fmt.Fprintln(out, msg.Text)
			default:
				return fmt.Errorf("unknown format %q (want html or text)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "body to print: html or text")
	return cmd
}

func renderPreview(kind string, cfg *config.Config, now time.Time) (*email.Message, error) {
	templates, err := email.LoadTemplates()
	if err != nil {
		return nil, err
	}

	brand := email.Branding{
		BusinessName: cfg.BusinessName,
		Phone:        cfg.BusinessPhone,
		WhatsApp:     cfg.BusinessWhatsApp,
		WebsiteName:  cfg.WebsiteName,
	}
	sample := email.QuoteDetails{
		Name:      "Test User",
		Email:     "test@example.com",
		Phone:     "01206 123456",
		Postcode:  "CO1 1AA",
		Issue:     "This is a test email from the development environment.",
		Submitted: now,
	}
	from := email.Address{Email: cfg.FromEmail}

	switch kind {
	case "notification":
		return templates.QuoteNotification(sample, brand, from, email.Address{Email: cfg.BusinessEmail})
	case "autoreply":
		return templates.AutoReply(sample, brand, from)
	default:
		return nil, fmt.Errorf("unknown email %q (want notification or autoreply)", kind)
	}
}
