package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Topic{
		"What SERVICES do you have?":    TopicServices,
		"what do you do":                TopicServices,
		"How much does a logo cost?":    TopicPricing,
		"show me your work":             TopicPortfolio,
		"Can I reach you by email":      TopicContact,
		"hello there":                   TopicDefault,
		"pricing for portfolio website": TopicPricing,
	}
	for in, want := range cases {
		assert.Equal(t, want, Classify(in), in)
	}
}

func TestRespond(t *testing.T) {
	_, ok := Respond("   ")
	assert.False(t, ok)

	r, ok := Respond("Portfolio")
	require.True(t, ok)
	assert.Equal(t, TopicPortfolio, r.Topic)
	assert.Contains(t, r.Text, "Portfolio section")
	assert.Len(t, r.QuickReplies, 4)
}

func TestQuickReplies_Copy(t *testing.T) {
	q := QuickReplies()
	q[0].Text = "changed"
	assert.Equal(t, "Services", QuickReplies()[0].Text)
}
