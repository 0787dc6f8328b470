package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectMatches(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
		match   bool
	}{
		{name: "exact", subject: "Dekont", want: "Dekont", match: true},
		{name: "substring", subject: "Ödeme dekontu ektedir", want: "dekont", match: true},
		{name: "case insensitive", subject: "DEKONT GÖNDERİYORUM", want: "Dekont", match: true},
		{name: "no match", subject: "Kayıt hakkında soru", want: "Dekont", match: false},
		{name: "empty filter matches all", subject: "herhangi bir konu", want: "", match: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, subjectMatches(tt.subject, tt.want))
		})
	}
}

func TestIsPDFAttachment(t *testing.T) {
	assert.True(t, isPDFAttachment("dekont.pdf"))
	assert.True(t, isPDFAttachment("Dekont.PDF"))
	assert.False(t, isPDFAttachment("dekont.png"))
	assert.False(t, isPDFAttachment("dekont"))
	assert.False(t, isPDFAttachment(""))
}
