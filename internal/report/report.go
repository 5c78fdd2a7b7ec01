// Package report sends an optional progress summary email for the active
// player. The mailer is disabled unless a sender address is configured and
// never fails the core flows.
package report

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ActivityLine is one activity row in the summary.
type ActivityLine struct {
	Title  string
	Record string
	Score  string
}

// Summary is the Adventure HQ digest for one player.
type Summary struct {
	PlayerName      string
	Avatar          string
	TotalLaunches   int
	Explored        int
	TotalActivities int
	Lines           []ActivityLine
}

// Mailer sends progress report emails via Amazon SES.
type Mailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
	debug     bool
}

// NewMailer creates a mailer. An empty from or to address yields a disabled
// mailer that skips every send.
func NewMailer(awsRegion, fromEmail, fromName, toEmail string, debug bool) (*Mailer, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Report mailer disabled: SES_FROM_EMAIL or REPORT_TO_EMAIL not configured")
		return &Mailer{enabled: false, debug: debug}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Report mailer enabled: from=%s, to=%s, region=%s", fromEmail, toEmail, awsRegion)

	return &Mailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the mailer is enabled.
func (m *Mailer) IsEnabled() bool {
	return m.enabled
}

// SendProgressReport emails a player's summary. A disabled mailer logs and
// returns nil.
func (m *Mailer) SendProgressReport(ctx context.Context, s Summary) error {
	if !m.enabled {
		log.Printf("Skipping report send (mailer disabled): player %s", s.PlayerName)
		return nil
	}

	subject := fmt.Sprintf("Fractions Arcade progress: %s", s.PlayerName)
	body := RenderText(s)

	if m.debug {
		log.Printf("[DEBUG] Sending progress report: to=%s, subject=%s, body=%d bytes", m.toEmail, subject, len(body))
	}

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{m.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send report to %s: %w", m.toEmail, err)
	}

	if m.debug && result.MessageId != nil {
		log.Printf("[DEBUG] SES message id: %s", *result.MessageId)
	}
	log.Printf("Progress report sent: to=%s, player=%s", m.toEmail, s.PlayerName)
	return nil
}

// RenderText renders the plain-text report body.
func RenderText(s Summary) string {
	var b strings.Builder

	name := s.PlayerName
	if s.Avatar != "" {
		name = s.Avatar + " " + name
	}
	fmt.Fprintf(&b, "Adventure HQ report for %s\n\n", name)
	fmt.Fprintf(&b, "Games explored: %d of %d\n", s.Explored, s.TotalActivities)
	fmt.Fprintf(&b, "Total launches: %d\n", s.TotalLaunches)

	if len(s.Lines) > 0 {
		b.WriteString("\nActivity records:\n")
		for _, line := range s.Lines {
			entry := line.Record
			if entry == "" {
				entry = line.Score
			}
			if entry == "" {
				entry = "played"
			}
			fmt.Fprintf(&b, "- %s: %s\n", line.Title, entry)
		}
	}

	b.WriteString("\n---\nThis is an automated email from Fractions Arcade. Please do not reply.\n")
	return b.String()
}
