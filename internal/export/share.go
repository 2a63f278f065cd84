package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/credibility-report/internal/scoring"
	"github.com/jonathan/credibility-report/internal/types"
)

// ShareKind selects a share generator.
type ShareKind string

// Share kinds
const (
	ShareSummary ShareKind = "summary"
	ShareEmail   ShareKind = "email"
	ShareSocial  ShareKind = "social"
)

// ParseShareKind resolves a share kind name.
func ParseShareKind(s string) (ShareKind, error) {
	switch k := ShareKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ShareSummary, ShareEmail, ShareSocial:
		return k, nil
	default:
		return "", fmt.Errorf("unknown share kind %q (want summary, email or social)", s)
	}
}

// SocialIntentURL is the base of the social-post link.
const SocialIntentURL = "https://twitter.com/intent/tweet"

// SharePayload is derived short text, never a full export.
type SharePayload struct {
	Kind    ShareKind `json:"kind"`
	Text    string    `json:"text"`
	Subject string    `json:"subject,omitempty"`
	Body    string    `json:"body,omitempty"`
	URL     string    `json:"url,omitempty"`
}

// SummaryLine is the one-line title and overall score.
func SummaryLine(r *types.Report) string {
	title := strings.TrimSpace(r.Title())
	if title == "" {
		title = "This article"
	} else {
		title = fmt.Sprintf("%q", title)
	}
	if r.OverallCredibility == nil {
		return fmt.Sprintf("%s has a credibility score of %s.", title, NotAvailable)
	}
	score := r.OverallCredibility.Int()
	return fmt.Sprintf("%s has a credibility score of %s (%s).", title, scoring.PercentageText(score), scoring.TierOf(score).Label)
}

// Share builds the payload for kind. pageURL is the address of the results view.
func Share(r *types.Report, kind ShareKind, pageURL string) (SharePayload, error) {
	if r == nil {
		return SharePayload{}, &UnavailableError{Format: Format(kind), Message: ErrNoReport}
	}

	line := SummaryLine(r)
	switch kind {
	case ShareSummary:
		return SharePayload{Kind: kind, Text: line}, nil

	case ShareEmail:
		title := orNA(strings.TrimSpace(r.Title()))
		subject := "Credibility Report: " + title
		var body strings.Builder
		body.WriteString(line + "\n\n")
		for _, b := range scoring.BadgesFor(r) {
			body.WriteString("- " + b.Text + "\n")
		}
		if pageURL != "" {
			body.WriteString("\nView the full report: " + pageURL + "\n")
		}
		p := SharePayload{Kind: kind, Subject: subject, Body: body.String()}
		p.URL = "mailto:?subject=" + mailtoEscape(p.Subject) + "&body=" + mailtoEscape(p.Body)
		p.Text = p.URL
		return p, nil

	case ShareSocial:
		text := "Checked the credibility of an article: " + line
		q := url.Values{}
		q.Set("text", text)
		if pageURL != "" {
			q.Set("url", pageURL)
		}
		p := SharePayload{Kind: kind, Text: strings.TrimSpace(text + " " + pageURL)}
		p.URL = SocialIntentURL + "?" + q.Encode()
		return p, nil

	default:
		return SharePayload{}, fmt.Errorf("unknown share kind %q", kind)
	}
}

// mailto bodies use %20 for spaces; mail clients render "+" literally.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// NativeSharer is a platform share sheet.
type NativeSharer interface {
	Available() bool
	Share(ctx context.Context, p SharePayload) error
}

// Clipboard copies text.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// DeliveryMethod reports how a payload reached the user.
type DeliveryMethod string

// Delivery methods
const (
	DeliveredNative    DeliveryMethod = "native"
	DeliveredClipboard DeliveryMethod = "clipboard"
)

// ErrCancelled is returned by a NativeSharer when the user dismissed the share sheet.
var ErrCancelled = errors.New("share cancelled")

// Deliverer offers a payload through the native share capability when available,
// falling back to the clipboard.
type Deliverer struct {
	Native    NativeSharer
	Clipboard Clipboard
}

// Deliver hands p to the user.
func (d Deliverer) Deliver(ctx context.Context, p SharePayload) (DeliveryMethod, error) {
	if d.Native != nil && d.Native.Available() {
		err := d.Native.Share(ctx, p)
		if err == nil {
			return DeliveredNative, nil
		}
		if errors.Is(err, ErrCancelled) {
			return "", err
		}
	}
	if d.Clipboard == nil {
		return "", &UnavailableError{Format: Format(p.Kind), Message: "no share target available"}
	}
	if err := d.Clipboard.Copy(ctx, p.Text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return DeliveredClipboard, nil
}
