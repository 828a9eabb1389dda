// internal/adapters/out/mail/templates.go
package mail

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateName はメールテンプレートの識別子です（HTTP のパスにも使う）。
type TemplateName string

const (
	TemplateWelcome             TemplateName = "welcome"
	TemplateContactConfirmation TemplateName = "contactConfirmation"
	TemplateContactNotification TemplateName = "contactNotification"
	TemplateProjectQuote        TemplateName = "projectQuote"
	TemplateProjectUpdate       TemplateName = "projectUpdate"
	TemplateProjectDelivery     TemplateName = "projectDelivery"
	TemplateNewsletter          TemplateName = "newsletter"
)

var templateFiles = map[TemplateName]string{
	TemplateWelcome:             "welcome.html",
	TemplateContactConfirmation: "contact_confirmation.html",
	TemplateContactNotification: "contact_notification.html",
	TemplateProjectQuote:        "project_quote.html",
	TemplateProjectUpdate:       "project_update.html",
	TemplateProjectDelivery:     "project_delivery.html",
	TemplateNewsletter:          "newsletter.html",
}

var ErrUnknownTemplate = errors.New("mail: unknown template")

// ========================================
// Template data
// ========================================

type WelcomeData struct {
	RecipientName string `json:"recipientName"`
	SiteURL       string `json:"siteUrl"`
}

type ContactConfirmationData struct {
	SenderName string `json:"senderName"`
	MessageID  string `json:"messageId"`
}

type ContactNotificationData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	MessageID  string `json:"messageId"`
	ReceivedAt string `json:"receivedAt"`
}

type ProjectQuoteData struct {
	ClientName   string `json:"clientName"`
	ProjectTitle string `json:"projectTitle"`
	Price        string `json:"price"`
	Timeline     string `json:"timeline"`
	Deliverables string `json:"deliverables"`
	ValidUntil   string `json:"validUntil"`
}

type ProjectUpdateData struct {
	ClientName    string `json:"clientName"`
	ProjectTitle  string `json:"projectTitle"`
	UpdateMessage string `json:"updateMessage"`
}

type ProjectDeliveryData struct {
	ClientName   string `json:"clientName"`
	ProjectTitle string `json:"projectTitle"`
	Date         string `json:"date"`
	Formats      string `json:"formats"`
	Access       string `json:"access"`
	DownloadLink string `json:"downloadLink"`
}

type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type NewsletterData struct {
	IssueNumber int         `json:"issueNumber"`
	Highlights  []Highlight `json:"highlights"`
}

func or(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

// withDefaults は未指定項目を既定の文言で埋めます。
func (d WelcomeData) withDefaults(siteURL string) WelcomeData {
	d.RecipientName = or(d.RecipientName, "there")
	d.SiteURL = or(d.SiteURL, siteURL)
	return d
}

func (d ContactConfirmationData) withDefaults(now time.Time) ContactConfirmationData {
	d.SenderName = or(d.SenderName, "there")
	d.MessageID = or(d.MessageID, fmt.Sprintf("REF-%d", now.UnixMilli()))
	return d
}

func (d ContactNotificationData) withDefaults(now time.Time) ContactNotificationData {
	d.ReceivedAt = or(d.ReceivedAt, now.UTC().Format(time.RFC1123))
	return d
}

func (d ProjectQuoteData) withDefaults() ProjectQuoteData {
	d.ClientName = or(d.ClientName, "Client")
	d.ProjectTitle = or(d.ProjectTitle, "Your Project")
	d.Price = or(d.Price, "Contact for pricing")
	d.Timeline = or(d.Timeline, "2-4 weeks")
	d.Deliverables = or(d.Deliverables, "Custom designs + revisions")
	d.ValidUntil = or(d.ValidUntil, "30 days")
	return d
}

func (d ProjectUpdateData) withDefaults() ProjectUpdateData {
	d.ClientName = or(d.ClientName, "Client")
	d.ProjectTitle = or(d.ProjectTitle, "Project")
	d.UpdateMessage = or(d.UpdateMessage, "We're making great progress on your design. Our team is working hard to bring your vision to life with creativity and precision.")
	return d
}

func (d ProjectDeliveryData) withDefaults(now time.Time, siteURL string) ProjectDeliveryData {
	d.ClientName = or(d.ClientName, "Client")
	d.ProjectTitle = or(d.ProjectTitle, "Project")
	d.Date = or(d.Date, now.Format("January 2, 2006"))
	d.Formats = or(d.Formats, "Multiple formats included")
	d.Access = or(d.Access, "Download link provided")
	d.DownloadLink = or(d.DownloadLink, siteURL)
	return d
}

func (d NewsletterData) withDefaults() NewsletterData {
	if d.IssueNumber <= 0 {
		d.IssueNumber = 1
	}
	hs := make([]Highlight, len(d.Highlights))
	for i, h := range d.Highlights {
		hs[i] = Highlight{
			Title:       or(h.Title, "New Project"),
			Description: or(h.Description, "Check out our latest work!"),
		}
	}
	d.Highlights = hs
	return d
}

// ========================================
// Renderer
// ========================================

// Rendered は件名と本文（HTML / テキスト）です。
type Rendered struct {
	Template TemplateName `json:"template"`
	Subject  string       `json:"subject"`
	HTML     string       `json:"html"`
	Text     string       `json:"text"`
}

// Renderer は埋め込みテンプレートを描画します。
type Renderer struct {
	tmpls   map[TemplateName]*template.Template
	siteURL string
	now     func() time.Time
}

func NewRenderer(siteURL string) (*Renderer, error) {
	tmpls := make(map[TemplateName]*template.Template, len(templateFiles))
	for name, file := range templateFiles {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		tmpls[name] = t
	}
	return &Renderer{
		tmpls:   tmpls,
		siteURL: or(siteURL, "https://designbynexa.com"),
		now:     time.Now,
	}, nil
}

type layoutData struct {
	Subject string
	Year    int
	Data    any
}

func (r *Renderer) render(name TemplateName, subject string, data any) (Rendered, error) {
	t, ok := r.tmpls[name]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", layoutData{Subject: subject, Year: r.now().Year(), Data: data}); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", name, err)
	}
	out := buf.String()
	return Rendered{Template: name, Subject: subject, HTML: out, Text: plainText(out)}, nil
}

func (r *Renderer) Welcome(d WelcomeData) (Rendered, error) {
	return r.render(TemplateWelcome, "🎉 Welcome to Nexa Designs!", d.withDefaults(r.siteURL))
}

func (r *Renderer) ContactConfirmation(d ContactConfirmationData) (Rendered, error) {
	return r.render(TemplateContactConfirmation, "✓ We Received Your Message", d.withDefaults(r.now()))
}

func (r *Renderer) ContactNotification(d ContactNotificationData) (Rendered, error) {
	d = d.withDefaults(r.now())
	return r.render(TemplateContactNotification, "📩 New Contact Message from "+or(d.Name, "website visitor"), d)
}

func (r *Renderer) ProjectQuote(d ProjectQuoteData) (Rendered, error) {
	d = d.withDefaults()
	return r.render(TemplateProjectQuote, "📊 Your Project Quote: "+d.ProjectTitle, d)
}

func (r *Renderer) ProjectUpdate(d ProjectUpdateData) (Rendered, error) {
	d = d.withDefaults()
	return r.render(TemplateProjectUpdate, "📊 Progress Update: "+d.ProjectTitle, d)
}

func (r *Renderer) ProjectDelivery(d ProjectDeliveryData) (Rendered, error) {
	d = d.withDefaults(r.now(), r.siteURL)
	return r.render(TemplateProjectDelivery, "🎉 Your Project is Ready: "+d.ProjectTitle, d)
}

func (r *Renderer) Newsletter(d NewsletterData) (Rendered, error) {
	d = d.withDefaults()
	return r.render(TemplateNewsletter, fmt.Sprintf("📰 Nexa Designs Newsletter - Issue #%d", d.IssueNumber), d)
}

// RenderJSON は JSON のデータからテンプレートを描画します（管理画面のプレビュー / 送信用）。
func (r *Renderer) RenderJSON(name TemplateName, raw json.RawMessage) (Rendered, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	switch name {
	case TemplateWelcome:
		var d WelcomeData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.Welcome(d)
	case TemplateContactConfirmation:
		var d ContactConfirmationData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.ContactConfirmation(d)
	case TemplateContactNotification:
		var d ContactNotificationData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.ContactNotification(d)
	case TemplateProjectQuote:
		var d ProjectQuoteData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.ProjectQuote(d)
	case TemplateProjectUpdate:
		var d ProjectUpdateData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.ProjectUpdate(d)
	case TemplateProjectDelivery:
		var d ProjectDeliveryData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.ProjectDelivery(d)
	case TemplateNewsletter:
		var d NewsletterData
		if err := json.Unmarshal(raw, &d); err != nil {
			return Rendered{}, err
		}
		return r.Newsletter(d)
	default:
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
}

// TemplateNames は利用可能なテンプレート名の一覧です。
func TemplateNames() []TemplateName {
	return []TemplateName{
		TemplateWelcome,
		TemplateContactConfirmation,
		TemplateContactNotification,
		TemplateProjectQuote,
		TemplateProjectUpdate,
		TemplateProjectDelivery,
		TemplateNewsletter,
	}
}

var (
	reStyle  = regexp.MustCompile(`(?is)<(style|head)[^>]*>.*?</(style|head)>`)
	reTag    = regexp.MustCompile(`(?s)<[^>]+>`)
	reBlanks = regexp.MustCompile(`\n\s*\n+`)
)

// plainText は HTML 本文から text/plain 用の本文を作ります。
func plainText(h string) string {
	s := reStyle.ReplaceAllString(h, "")
	s = reTag.ReplaceAllString(s, "\n")
	s = html.UnescapeString(s)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.Join(strings.Fields(l), " ")
	}
	s = reBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return strings.TrimSpace(s)
}
