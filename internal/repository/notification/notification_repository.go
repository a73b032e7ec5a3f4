package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pobyzaarif/goshortcute"

	"myTourGuide/pkg/logger"
)

type MailjetConfig struct {
	MailjetBaseURL           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

// MailjetRepository delivers transactional mail (account verification)
// through the Mailjet v3.1 send API.
type MailjetRepository struct {
	cfg    MailjetConfig
	client *http.Client
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// party is one sender or recipient in the Mailjet payload.
type party struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailjetMessage struct {
	From     party   `json:"From"`
	To       []party `json:"To"`
	Subject  string  `json:"Subject"`
	TextPart string  `json:"TextPart"`
	HTMLPart string  `json:"HTMLPart"`
}

type sendEmailPayload struct {
	Messages []mailjetMessage `json:"Messages"`
}

// SendEmail sends one message to one recipient. The body doubles as both
// text and HTML part; verification mail carries an HTML link.
func (r *MailjetRepository) SendEmail(toName, toEmail, subject, message string) (err error) {
	payload := sendEmailPayload{
		Messages: []mailjetMessage{
			{
				From: party{
					Email: r.cfg.MailjetSenderEmail,
					Name:  r.cfg.MailjetSenderName,
				},
				To:       []party{{Email: toEmail, Name: toName}},
				Subject:  subject,
				TextPart: message,
				HTMLPart: message,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.cfg.MailjetBaseURL+"/v3.1/send", bytes.NewReader(body))
	if err != nil {
		return err
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.cfg.MailjetBasicAuthUsername + ":" + r.cfg.MailjetBasicAuthPassword)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+basicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	resBody, _ := io.ReadAll(res.Body)
	logger.Warn("mailjet rejected email", "status", res.StatusCode, "body", string(resBody))

	return fmt.Errorf("mail delivery failed with status %v", res.StatusCode)
}
