package dekont

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSenderName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "gonderen label",
			text: "Gönderen: Ahmet Yılmaz\nTutar: 100,00 TL",
			want: "Ahmet Yılmaz",
		},
		{
			name: "uppercase label with dotted i",
			text: "KİMDEN: Ayşe Demir",
			want: "Ayşe Demir",
		},
		{
			name: "hesap sahibi label",
			text: "Hesap Sahibi: Mehmet Öztürk",
			want: "Mehmet Öztürk",
		},
		{
			name: "digits in value rejected",
			text: "Gönderen: TR12 0006 4000 0011",
			want: "",
		},
		{
			name: "too short value rejected",
			text: "Ad: Al",
			want: "",
		},
		{
			name: "no label",
			text: "Bu bir test metnidir",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSenderName(tt.text))
		})
	}
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		none bool
	}{
		{
			name: "turkish thousands and decimal",
			text: "İşlem Tutarı: 1.234,56 TL",
			want: 1234.56,
		},
		{
			name: "currency before number",
			text: "TL 500,00 gönderildi",
			want: 500.00,
		},
		{
			name: "fee line skipped in favor of labelled amount",
			text: "Masraf: 5,00 TL\nTutar: 1.000,00 TL",
			want: 1000.00,
		},
		{
			name: "commission only yields nothing",
			text: "Komisyon: 7,50 TL\nBSMV: 0,38 TL",
			none: true,
		},
		{
			name: "bare number fallback within range",
			text: "Havale 2.500,00 referans 99",
			want: 2500.00,
		},
		{
			name: "bare number outside range ignored",
			text: "Referans 2500000",
			none: true,
		},
		{
			name: "usd amount",
			text: "Tutar: 250,00 USD",
			want: 250.00,
		},
		{
			name: "no amount",
			text: "herhangi bir sayı yok",
			none: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAmount(tt.text)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}

func TestParseTurkishDecimal(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1.234,56", want: 1234.56},
		{in: "500", want: 500},
		{in: "0,99", want: 0.99},
		{in: "12.345.678,90", want: 12345678.90},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTurkishDecimal(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestExtractBankName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "known token lowercase",
			text: "garanti bbva mobil şubesinden gönderildi",
			want: "Garanti",
		},
		{
			name: "known token uppercase turkish",
			text: "ZİRAAT BANKASI DEKONTU",
			want: "Ziraat",
		},
		{
			name: "multi word token",
			text: "Kuveyt Türk katılım hesabı",
			want: "Kuveyt Türk",
		},
		{
			name: "label fallback",
			text: "Banka: Örnek Katılım",
			want: "Örnek Katılım",
		},
		{
			name: "nothing",
			text: "bilinmeyen kurum",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBankName(tt.text))
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "dmy slashes", text: "Tarih: 05/07/2025", want: "2025-07-05"},
		{name: "dmy dots two digit year", text: "İşlem: 05.07.25", want: "2025-07-05"},
		{name: "ymd dashes", text: "2025-07-05 tarihli işlem", want: "2025-07-05"},
		{name: "month name", text: "5 Temmuz 2025 tarihinde", want: "2025-07-05"},
		{name: "uppercase month name", text: "12 ŞUBAT 2024", want: "2024-02-12"},
		{name: "invalid day rejected", text: "32/01/2025", want: ""},
		{name: "invalid month rejected", text: "05/13/2025", want: ""},
		{name: "no date", text: "tarih yok", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDate(tt.text))
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "colon with seconds", text: "Saat: 14:35:22", want: "14:35:22"},
		{name: "colon without seconds", text: "Saat 09:05", want: "09:05:00"},
		{name: "dot separated", text: "saat 14.35 itibariyle", want: "14:35:00"},
		{name: "invalid hour rejected", text: "25:00", want: ""},
		{name: "invalid minute rejected", text: "12:75", want: ""},
		{name: "no time", text: "saat bilgisi yok", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTime(tt.text))
		})
	}
}

func TestPatternExtractor_Extract(t *testing.T) {
	p := NewPatternExtractor()

	text := "Gönderen: Ahmet Yılmaz\nTutar: 1.000,00 TL\nGaranti Bankası\n05/07/2025 14:30"
	c, outcome := p.Extract(text)

	assert.Equal(t, StageOK, outcome.Status)
	assert.Equal(t, "Ahmet Yılmaz", c.SenderName)
	require.NotNil(t, c.Amount)
	assert.InDelta(t, 1000.00, *c.Amount, 0.001)
	assert.Equal(t, "Garanti", c.BankName)
	assert.Equal(t, "2025-07-05", c.TransactionDate)
	assert.Equal(t, "14:30:00", c.TransactionTime)

	_, outcome = p.Extract("hiçbir alan yok")
	assert.Equal(t, StageEmpty, outcome.Status)
}
