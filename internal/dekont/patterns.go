package dekont

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PatternExtractor pulls receipt fields out of raw text with a fixed
// library of Turkish banking patterns. It is deterministic, needs no
// network, and never fails; fields it cannot find stay empty.
type PatternExtractor struct{}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

func (p *PatternExtractor) Extract(text string) (Candidate, StageOutcome) {
	c := Candidate{
		SenderName:      extractSenderName(text),
		Amount:          extractAmount(text),
		BankName:        extractBankName(text),
		TransactionDate: extractDate(text),
		TransactionTime: extractTime(text),
	}
	if c.IsEmpty() {
		return c, StageOutcome{Status: StageEmpty, Reason: "no patterns matched"}
	}
	return c, StageOutcome{Status: StageOK}
}

// RE2 case folding does not cover the Turkish dotted/dotless i pair,
// so pattern words spell those letters as explicit classes: [iİ] and
// [ıI]. The (?i) flag handles everything else, including ö/ü/ş/ç/ğ.

var senderNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)gönderen\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)gönderen\s+k[iİ]ş[iİ]\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)k[iİ]mden\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)gönder[iİ]c[iİ]\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)ödeme\s+yapan\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)ödeme\s+eden\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)kart\s+sah[iİ]b[iİ]\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)hesap\s+sah[iİ]b[iİ]\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)[iİ]s[iİ]m\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)ad\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)kullan[ıI]c[ıI]\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)müşter[iİ]\s*:?\s*([^\n]+)`),
}

// Candidate sender values must be pure letters and whitespace. This
// rejects captures that ran into account numbers or masked IBANs.
var senderValueRe = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s]+$`)

func extractSenderName(text string) string {
	for _, re := range senderNamePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 2 && senderValueRe.MatchString(name) {
			return name
		}
	}
	return ""
}

// Amount extraction is line based so that fee and commission lines
// never win over the actual transfer amount.
var (
	amountLabelRe = regexp.MustCompile(`(?i)tutar|m[iİ]ktar`)
	feeLineRe     = regexp.MustCompile(`(?i)masraf|kom[iİ]syon|ücret|bsmv|verg[iİ]`)

	currencyAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)\s*(?:TL|₺|l[iİ]ra)`),
		regexp.MustCompile(`(?i)(?:TL|₺|l[iİ]ra)\s*(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`),
		regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)\s*(?:USD|dolar)`),
		regexp.MustCompile(`(?i)(?:USD|dolar)\s*(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`),
		regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)\s*(?:EUR|euro)`),
		regexp.MustCompile(`(?i)(?:EUR|euro)\s*(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`),
	}

	bareAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d{2})?`),
		regexp.MustCompile(`\d+,\d{2}`),
		regexp.MustCompile(`\d+\.\d{2}`),
	}
)

func extractAmount(text string) *float64 {
	lines := strings.Split(text, "\n")

	// First the explicitly labelled amount lines, then any line with a
	// currency marker, then a bare-number fallback. Fee lines are
	// skipped at every stage.
	if v := amountFromLines(lines, true); v != nil {
		return v
	}
	if v := amountFromLines(lines, false); v != nil {
		return v
	}
	return bareAmountFromLines(lines)
}

func amountFromLines(lines []string, labelledOnly bool) *float64 {
	for _, line := range lines {
		if feeLineRe.MatchString(line) {
			continue
		}
		if labelledOnly && !amountLabelRe.MatchString(line) {
			continue
		}
		for _, re := range currencyAmountPatterns {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if v, err := parseTurkishDecimal(m[1]); err == nil && v > 0 {
				return &v
			}
		}
	}
	return nil
}

func bareAmountFromLines(lines []string) *float64 {
	for _, re := range bareAmountPatterns {
		for _, line := range lines {
			if feeLineRe.MatchString(line) {
				continue
			}
			m := re.FindString(line)
			if m == "" {
				continue
			}
			v, err := parseTurkishDecimal(m)
			if err != nil || v < 1 || v > 100000 {
				continue
			}
			return &v
		}
	}
	return nil
}

// parseTurkishDecimal reads "1.234,56" as 1234.56. Dots are thousands
// separators, the comma is the decimal mark.
func parseTurkishDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// Known bank and payment-channel tokens, matched on a lowercased copy
// of the text. Order matters: multi-word entries first.
var bankTokens = []string{
	"kuveyt türk",
	"yapı kredi",
	"qnb finansbank",
	"türkiye finans",
	"akbank",
	"garanti",
	"işbank",
	"iş bankası",
	"yapıkredi",
	"ziraat",
	"vakıfbank",
	"halkbank",
	"denizbank",
	"kuveyttürk",
	"finansbank",
	"qnb",
	"ing",
	"hsbc",
	"teb",
	"şekerbank",
	"enpara",
	"papara",
	"paycell",
	"tosla",
	"fast",
	"havale",
	"eft",
	"mobil",
	"internet",
	"online",
}

var bankLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)banka\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)bank\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)hesap\s*:?\s*([^\n]+)`),
	regexp.MustCompile(`(?i)kart\s*:?\s*([^\n]+)`),
}

var bankValueRe = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s]+$`)

func extractBankName(text string) string {
	lowered := lowerTurkish(text)
	for _, token := range bankTokens {
		if strings.Contains(lowered, token) {
			return titleTurkish(token)
		}
	}
	for _, re := range bankLabelPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if len(value) > 2 && bankValueRe.MatchString(value) {
			return value
		}
	}
	return ""
}

// Date patterns in priority order. Word boundaries keep the two-digit
// form from matching inside a four-digit year.
var (
	dateDMYRe   = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})\b`)
	dateYMDRe   = regexp.MustCompile(`\b(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})\b`)
	dateMonthRe = regexp.MustCompile(`\b(\d{1,2})\s+([a-zA-ZğüşıöçĞÜŞİÖÇ]+)\s+(\d{4})\b`)
)

var monthNames = map[string]int{
	"ocak": 1, "şubat": 2, "mart": 3, "nisan": 4,
	"mayıs": 5, "haziran": 6, "temmuz": 7, "ağustos": 8,
	"eylül": 9, "ekim": 10, "kasım": 11, "aralık": 12,
}

func extractDate(text string) string {
	if m := dateDMYRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		if s := formatValidDate(year, month, day); s != "" {
			return s
		}
	}
	if m := dateYMDRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if s := formatValidDate(year, month, day); s != "" {
			return s
		}
	}
	if m := dateMonthRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthNames[lowerTurkish(m[2])]
		if ok {
			year, _ := strconv.Atoi(m[3])
			if s := formatValidDate(year, month, day); s != "" {
				return s
			}
		}
	}
	return ""
}

func formatValidDate(year, month, day int) string {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return ""
	}
	return t.Format("2006-01-02")
}

var (
	timeColonRe = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)
	timeDotRe   = regexp.MustCompile(`\b(\d{1,2})\.(\d{2})\b`)
)

func extractTime(text string) string {
	if m := timeColonRe.FindStringSubmatch(text); m != nil {
		if s := formatValidTime(m[1], m[2], m[3]); s != "" {
			return s
		}
	}
	if m := timeDotRe.FindStringSubmatch(text); m != nil {
		if s := formatValidTime(m[1], m[2], ""); s != "" {
			return s
		}
	}
	return ""
}

func formatValidTime(hourStr, minStr, secStr string) string {
	hour, _ := strconv.Atoi(hourStr)
	min, _ := strconv.Atoi(minStr)
	sec := 0
	if secStr != "" {
		sec, _ = strconv.Atoi(secStr)
	}
	if hour > 23 || min > 59 || sec > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", hour, min, sec)
}

// lowerTurkish lowercases with the Turkish i rules: İ becomes i and I
// becomes ı, so token matching works on uppercase receipts.
func lowerTurkish(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case 'İ':
			sb.WriteRune('i')
		case 'I':
			sb.WriteRune('ı')
		default:
			sb.WriteRune(toLowerRune(r))
		}
	}
	return sb.String()
}

func toLowerRune(r rune) rune {
	return []rune(strings.ToLower(string(r)))[0]
}

func titleTurkish(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		switch runes[0] {
		case 'i':
			runes[0] = 'İ'
		case 'ı':
			runes[0] = 'I'
		default:
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
