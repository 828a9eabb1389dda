package contact

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Validate(t *testing.T) {
	ok := Message{Name: "Ann", Email: "ann@example.com", Message: "Hi"}
	assert.NoError(t, ok.Validate())

	cases := []struct {
		name string
		msg  Message
		want error
	}{
		{"missing name", Message{Email: "a@example.com", Message: "x"}, ErrRequiredField},
		{"missing email", Message{Name: "a", Message: "x"}, ErrRequiredField},
		{"missing message", Message{Name: "a", Email: "a@example.com"}, ErrRequiredField},
		{"bad email", Message{Name: "a", Email: "not-an-email", Message: "x"}, ErrInvalidEmail},
		{"display name email", Message{Name: "a", Email: "A <a@example.com>", Message: "x"}, ErrInvalidEmail},
		{"too long", Message{Name: "a", Email: "a@example.com", Message: strings.Repeat("x", MaxMessageLength+1)}, ErrTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.msg.Validate(), tc.want)
		})
	}
}

func TestMessage_NormalizeAndRecord(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600))
	m := Message{ID: "m1", Name: "  Ann ", Email: " ann@example.com", Message: " hello ", CreatedAt: now}.Normalize()

	rec := m.Record()

	assert.Equal(t, "Ann", rec["name"])
	assert.Equal(t, "ann@example.com", rec["email"])
	assert.Equal(t, "hello", rec["message"])
	assert.Equal(t, "new", rec["status"])
	assert.Equal(t, now.UTC(), rec["createdAt"])
}
