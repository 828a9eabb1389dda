// internal/domain/chatbot/responder.go
package chatbot

import "strings"

// Topic は応答の分類です。
type Topic string

const (
	TopicServices  Topic = "services"
	TopicPricing   Topic = "pricing"
	TopicPortfolio Topic = "portfolio"
	TopicContact   Topic = "contact"
	TopicDefault   Topic = "default"
)

// Greeting はチャット開始時のメッセージ
const Greeting = "Hello! How can I help you today?"

// QuickReply はチャット画面のショートカットボタンです。
type QuickReply struct {
	Text  string `json:"text"`
	Value Topic  `json:"value"`
}

// Reply は 1 回分の応答です。
type Reply struct {
	Topic        Topic        `json:"topic"`
	Text         string       `json:"text"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

var quickReplies = []QuickReply{
	{Text: "Services", Value: TopicServices},
	{Text: "Pricing", Value: TopicPricing},
	{Text: "Portfolio", Value: TopicPortfolio},
	{Text: "Contact", Value: TopicContact},
}

var responses = map[Topic]string{
	TopicServices:  "We offer Logo & Branding, Posters & Promotional Design, Illustrations & Portraits, Social Media Creatives, Brand Identity Packages, and UI/UX Design. Which service interests you?",
	TopicPricing:   "Our pricing varies based on project scope and requirements. Please contact us directly for a custom quote tailored to your needs!",
	TopicPortfolio: "You can view our portfolio by scrolling up to the Portfolio section or clicking \"View Portfolio\" in the header. Want me to take you there?",
	TopicContact:   "You can reach us via:\n• WhatsApp: Instant chat\n• Email: contact@nexadesigns.com\n• Or use the contact form above!",
	TopicDefault:   "Thanks for your message! For detailed inquiries, please use the contact form or reach out via WhatsApp. We typically respond within 24 hours.",
}

// キーワード表（上から順に評価）
var rules = []struct {
	topic    Topic
	keywords []string
}{
	{TopicServices, []string{"service", "what do you"}},
	{TopicPricing, []string{"price", "cost", "pricing"}},
	{TopicPortfolio, []string{"portfolio", "work", "project"}},
	{TopicContact, []string{"contact", "reach", "email"}},
}

// QuickReplies はショートカットボタン一覧（コピー）を返します。
func QuickReplies() []QuickReply {
	out := make([]QuickReply, len(quickReplies))
	copy(out, quickReplies)
	return out
}

// Classify は入力文をトピックに分類します（大文字小文字は無視）。
func Classify(input string) Topic {
	s := strings.ToLower(input)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(s, kw) {
				return r.topic
			}
		}
	}
	return TopicDefault
}

// Respond は入力文に対する定型応答を返します。空入力は ok=false。
func Respond(input string) (Reply, bool) {
	if strings.TrimSpace(input) == "" {
		return Reply{}, false
	}
	topic := Classify(input)
	return Reply{
		Topic:        topic,
		Text:         responses[topic],
		QuickReplies: QuickReplies(),
	}, true
}
