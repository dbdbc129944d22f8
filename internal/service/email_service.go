package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"littlestar/internal/models"
)

// EmailService sends parent notifications via Amazon SES
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	parentEmail string
	enabled     bool
}

// NewEmailService creates a new email service. When fromEmail or parentEmail
// is empty the service is created disabled and every send becomes a logged
// no-op; the app never requires email to function.
func NewEmailService(awsRegion, fromEmail, parentEmail string) (*EmailService, error) {
	if fromEmail == "" || parentEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:      sesv2.NewFromConfig(cfg),
		fromEmail:   fromEmail,
		parentEmail: parentEmail,
		enabled:     true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendQuotaReachedNotice tells the parent that today's screen time ran out.
func (s *EmailService) SendQuotaReachedNotice(ctx context.Context, childName string, limitMinutes int) error {
	if !s.enabled {
		log.Println("Skipping email send (service disabled): quota notice")
		return nil
	}

	subject := fmt.Sprintf("%s reached today's Little Star limit", childName)
	textBody := fmt.Sprintf(
		"Hi,\n\n%s has used all %d minutes of Little Star time for today. "+
			"The app will stay paused until tomorrow (or until you reset today's usage from the parent dashboard).\n\n- Little Star",
		childName, limitMinutes)
	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi,</p>
<p><strong>%s</strong> has used all <strong>%d minutes</strong> of Little Star time for today.</p>
<p>The app will stay paused until tomorrow, or until you reset today's usage from the parent dashboard.</p>
<p>- Little Star</p>
</body></html>`, childName, limitMinutes)

	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

// SendDailySummary mails the parent what the child did today: completed
// activity kinds and any newly unlocked strengths.
func (s *EmailService) SendDailySummary(ctx context.Context, childName string, day time.Time, wins []string, strengths []models.Strength) error {
	if !s.enabled {
		log.Println("Skipping email send (service disabled): daily summary")
		return nil
	}

	winList := "no activities yet"
	if len(wins) > 0 {
		winList = strings.Join(wins, ", ")
	}

	var strengthLines strings.Builder
	for _, st := range strengths {
		fmt.Fprintf(&strengthLines, "<li>%s</li>", st.Name)
	}
	strengthBlock := "<p>No strengths unlocked yet.</p>"
	if strengthLines.Len() > 0 {
		strengthBlock = fmt.Sprintf("<ul>%s</ul>", strengthLines.String())
	}

	subject := fmt.Sprintf("Little Star summary for %s - %s", childName, day.Format("Jan 2"))
	textBody := fmt.Sprintf("Hi,\n\nToday %s completed: %s.\n\n- Little Star", childName, winList)
	htmlBody := fmt.Sprintf(`<html><body>
<p>Hi,</p>
<p>Today <strong>%s</strong> completed: %s.</p>
<p>Strengths unlocked so far:</p>
%s
<p>- Little Star</p>
</body></html>`, childName, winList, strengthBlock)

	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("Little Star <%s>", s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{s.parentEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("Email sent successfully: subject=%s", subject)
	return nil
}
