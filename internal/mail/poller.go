package mail

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/service"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/config"
)

// Poller ingests receipts that applicants mail in instead of using
// the form. Each cycle it scans unseen messages, pulls the first PDF
// attachment from matching ones, and runs the analysis pipeline.
// Messages are marked seen only after a successful analysis, so a
// transient failure gets retried on the next cycle.
type Poller struct {
	cfg       config.MailConfig
	dekonts   *service.DekontService
	uploadDir string
	logger    *zap.Logger
}

func NewPoller(cfg config.MailConfig, dekonts *service.DekontService, uploadDir string, logger *zap.Logger) *Poller {
	return &Poller{
		cfg:       cfg,
		dekonts:   dekonts,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Poll runs one mailbox scan. It connects fresh each cycle; IMAP
// servers drop idle connections faster than the poll interval anyway.
func (p *Poller) Poll(ctx context.Context) error {
	if p.cfg.IMAPServer == "" {
		return fmt.Errorf("imap server not configured")
	}

	c, err := client.DialTLS(p.cfg.IMAPServer, nil)
	if err != nil {
		return fmt.Errorf("dial imap server: %w", err)
	}
	defer c.Logout()

	if err := c.Login(p.cfg.Username, p.cfg.Password); err != nil {
		return fmt.Errorf("imap login: %w", err)
	}

	if _, err := c.Select("INBOX", false); err != nil {
		return fmt.Errorf("select inbox: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := c.Search(criteria)
	if err != nil {
		return fmt.Errorf("search unseen: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	p.logger.Info("unseen messages found", zap.Int("count", len(ids)))

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	// Peek keeps the server from flagging messages as seen on fetch;
	// that only happens after a successful analysis.
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	var processed []uint32
	for msg := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.processMessage(ctx, msg, section) {
			processed = append(processed, msg.SeqNum)
		}
	}
	if err := <-done; err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}

	if len(processed) > 0 {
		seen := new(imap.SeqSet)
		seen.AddNum(processed...)
		item := imap.FormatFlagsOp(imap.AddFlags, true)
		if err := c.Store(seen, item, []interface{}{imap.SeenFlag}, nil); err != nil {
			return fmt.Errorf("mark seen: %w", err)
		}
		p.logger.Info("messages processed and marked seen", zap.Int("count", len(processed)))
	}

	return nil
}

// processMessage reports whether the message was fully handled and
// may be marked seen.
func (p *Poller) processMessage(ctx context.Context, msg *imap.Message, section *imap.BodySectionName) bool {
	if msg.Envelope == nil || !subjectMatches(msg.Envelope.Subject, p.cfg.Subject) {
		return false
	}

	body := msg.GetBody(section)
	if body == nil {
		p.logger.Warn("message body missing", zap.Uint32("seq", msg.SeqNum))
		return false
	}

	pdfPath, err := p.extractPDF(body)
	if err != nil {
		p.logger.Warn("failed to read mail attachment",
			zap.Uint32("seq", msg.SeqNum),
			zap.Error(err))
		return false
	}
	if pdfPath == "" {
		p.logger.Info("matching mail carries no pdf attachment",
			zap.Uint32("seq", msg.SeqNum),
			zap.String("subject", msg.Envelope.Subject))
		// Nothing to retry either; let it be marked seen.
		return true
	}

	if _, err := p.dekonts.AnalyzeAndStore(ctx, models.SourceEmail, nil, pdfPath); err != nil {
		p.logger.Warn("mailed dekont analysis failed",
			zap.Uint32("seq", msg.SeqNum),
			zap.Error(err))
		return false
	}

	return true
}

// extractPDF writes the first PDF attachment to the upload directory
// and returns its path. An empty path means no PDF was attached.
func (p *Poller) extractPDF(body io.Reader) (string, error) {
	mr, err := mail.CreateReader(body)
	if err != nil {
		return "", fmt.Errorf("parse mail: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("read mail part: %w", err)
		}

		header, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, err := header.Filename()
		if err != nil || !isPDFAttachment(filename) {
			continue
		}

		return p.saveAttachment(part.Body)
	}
}

func (p *Poller) saveAttachment(r io.Reader) (string, error) {
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(p.uploadDir, uuid.New().String()+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write attachment: %w", err)
	}

	return path, nil
}

func subjectMatches(subject, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(subject), strings.ToLower(want))
}

func isPDFAttachment(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
