package reporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"albumboard/services/groupboard"

	"github.com/jordan-wright/email"
	"github.com/robfig/cron/v3"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Config struct {
	// 5-field cron expression (minute hour day-of-month month
	// day-of-week), e.g. "0 9 * * 1" for Mondays at 9am. Empty
	// disables the reporter.
	Schedule   string     `json:"schedule"`
	Recipients []string   `json:"recipients"`
	Smtp       SmtpConfig `json:"smtp"`
}

func (c Config) enabled() bool {
	return c.Schedule != "" && len(c.Recipients) > 0
}

type Reporter struct {
	config  Config
	session *groupboard.Session
}

func New(config Config, session *groupboard.Session) *Reporter {
	return &Reporter{config: config, session: session}
}

// Start schedules periodic digest emails until the context is
// cancelled. A misconfigured schedule disables the reporter rather
// than failing the whole process.
func (r *Reporter) Start(ctx context.Context) {
	if !r.config.enabled() {
		slog.Info("digest reporter disabled (no schedule or recipients)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(r.config.Schedule)
	if err != nil {
		slog.Error("invalid digest schedule, reporter disabled",
			"schedule", r.config.Schedule, "err", err)
		return
	}

	slog.Info("digest reporter scheduled",
		"schedule", r.config.Schedule,
		"recipients", len(r.config.Recipients),
	)

	go func() {
		for {
			now := time.Now()
			next := schedule.Next(now)

			select {
			case <-time.After(next.Sub(now)):
			case <-ctx.Done():
				return
			}

			err := r.SendDigest(ctx)
			if err != nil {
				slog.Error("failed to send digest", "err", err)
			}
		}
	}()
}

// SendDigest refreshes the session and emails the rendered summary.
// A refresh failure still sends the previous snapshot when one is
// loaded, the digest is reporting, not scraping.
func (r *Reporter) SendDigest(ctx context.Context) error {
	_, err := r.session.Refresh(ctx)
	if err != nil {
		slog.Warn("digest refresh failed, using previous snapshot", "err", err)
	}

	t := r.session.Table()
	if t.Len() == 0 {
		return fmt.Errorf("no album table loaded, skipping digest")
	}

	body := BuildDigest(r.session.GroupURL(), t, r.session.LastUpdated())

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Albumboard <%s>", r.config.Smtp.EmailAddress)
	mail.To = r.config.Recipients
	mail.Subject = fmt.Sprintf("Album digest for %s", time.Now().Format("Jan 2"))
	mail.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", r.config.Smtp.Server, r.config.Smtp.Port)
	err = mail.Send(addr, smtp.PlainAuth("", r.config.Smtp.EmailAddress, r.config.Smtp.Password, r.config.Smtp.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		return err
	}

	slog.Info("digest sent", "recipients", len(r.config.Recipients))
	return nil
}
