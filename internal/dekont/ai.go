package dekont

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/llm"
)

// AIExtractor asks the configured language model for the receipt
// fields. A nil generator disables the stage entirely. Every failure
// mode is absorbed into a StageOutcome so the pipeline can always fall
// back to pattern extraction.
type AIExtractor struct {
	generator llm.Generator
	timeout   time.Duration
	logger    *zap.Logger
}

func NewAIExtractor(generator llm.Generator, timeout time.Duration, logger *zap.Logger) *AIExtractor {
	return &AIExtractor{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

func (a *AIExtractor) Enabled() bool {
	return a.generator != nil
}

func (a *AIExtractor) Analyze(ctx context.Context, text string) (Candidate, StageOutcome) {
	if a.generator == nil {
		return Candidate{}, StageOutcome{Status: StageSkipped, Reason: "ai extraction disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.generator.Generate(ctx, buildPrompt(text))
	if err != nil {
		a.logger.Warn("ai extraction request failed", zap.Error(err))
		return Candidate{}, StageOutcome{Status: StageFailed, Reason: err.Error()}
	}

	c, err := parseAIResponse(raw)
	if err != nil {
		a.logger.Warn("ai response could not be parsed",
			zap.String("response", truncate(raw, 200)),
			zap.Error(err))
		return Candidate{}, StageOutcome{Status: StageMalformed, Reason: err.Error()}
	}

	if c.IsEmpty() {
		return c, StageOutcome{Status: StageEmpty, Reason: "ai found no fields"}
	}
	return c, StageOutcome{Status: StageOK}
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Aşağıdaki banka dekontu metninden bilgileri çıkar ve SADECE JSON formatında döndür.

Dekont metni:
%s

Kurallar:
- sender_name: parayı gönderen kişinin adı soyadı. Alıcı adını değil, gönderen adını al.
- amount: asıl transfer tutarı, sayı olarak. Masraf, komisyon, işlem ücreti ve BSMV tutarlarını ASLA alma.
- bank_name: işlemin yapıldığı banka veya ödeme kanalı.
- transaction_date: işlem tarihi, YYYY-MM-DD formatında.
- transaction_time: işlem saati, HH:MM:SS formatında.
- Bulamadığın alan için null döndür.
- Açıklama yazma, markdown kullanma, sadece JSON döndür.

JSON formatı:
{"sender_name": "...", "amount": 0.0, "bank_name": "...", "transaction_date": "...", "transaction_time": "..."}`, text)
}

var (
	jsonSpanRe = regexp.MustCompile(`(?s)\{.*\}`)
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe    = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)
)

// parseAIResponse recovers a Candidate from whatever the model sent
// back. It tries the body as-is, then with markdown fences stripped,
// then the widest brace-delimited span.
func parseAIResponse(raw string) (Candidate, error) {
	body := stripFences(strings.TrimSpace(raw))

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		span := jsonSpanRe.FindString(body)
		if span == "" {
			return Candidate{}, fmt.Errorf("no json object in response")
		}
		if err := json.Unmarshal([]byte(span), &fields); err != nil {
			return Candidate{}, fmt.Errorf("invalid json in response: %w", err)
		}
	}

	return candidateFromFields(fields), nil
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func candidateFromFields(fields map[string]any) Candidate {
	c := Candidate{
		SenderName: stringField(fields, "sender_name"),
		Amount:     amountField(fields["amount"]),
		BankName:   stringField(fields, "bank_name"),
	}

	if date := stringField(fields, "transaction_date"); isoDateRe.MatchString(date) {
		if _, err := time.Parse("2006-01-02", date); err == nil {
			c.TransactionDate = date
		}
	}
	if clock := stringField(fields, "transaction_time"); clock != "" {
		if m := clockRe.FindStringSubmatch(clock); m != nil {
			c.TransactionTime = formatValidTime(m[1], m[2], m[3])
		}
	}

	return c
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// amountField accepts the number however the model sent it: a JSON
// number, a plain decimal string, or a Turkish-formatted string.
func amountField(v any) *float64 {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return &n
		}
	case string:
		n = strings.TrimSpace(n)
		if n == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil && f > 0 {
			return &f
		}
		if f, err := parseTurkishDecimal(n); err == nil && f > 0 {
			return &f
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
