package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Messenger sends an outbound message and returns the provider's message ID.
type Messenger interface {
	Send(ctx context.Context, to, body string) (string, error)
}

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioClient sends WhatsApp messages through the Twilio REST API.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
}

// NewTwilioClient creates a Twilio WhatsApp messaging client. Sends are
// paced to avoid tripping Twilio's per-number throughput limits.
func NewTwilioClient(accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    twilioAPIBase,
		client:     &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
}

// Send delivers a single WhatsApp message and returns the message SID.
func (t *TwilioClient) Send(ctx context.Context, to, body string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: twilio request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: twilio returned status %d: %s", ErrUpstream, resp.StatusCode, string(payload))
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode twilio response: %v", ErrUpstream, err)
	}
	return result.SID, nil
}

// SendChunked splits a long message and delivers each piece in order.
func (t *TwilioClient) SendChunked(ctx context.Context, to, body string, limit int) error {
	for _, chunk := range SplitMessage(body, limit) {
		if _, err := t.Send(ctx, to, chunk); err != nil {
			return err
		}
	}
	return nil
}

// DownloadMedia fetches a Twilio-hosted media file into a temp file and
// returns its path. The caller removes the file when done.
func (t *TwilioClient) DownloadMedia(ctx context.Context, mediaURL, contentType string) (string, error) {
	// Twilio media URLs sometimes carry a trailing .json suffix that
	// points at metadata instead of the payload
	mediaURL = strings.TrimSuffix(mediaURL, ".json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMediaDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: media fetch returned status %d", ErrMediaDownload, resp.StatusCode)
	}

	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}

	file, err := os.CreateTemp("", "sentinel-media-*"+extensionForContentType(contentType))
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("%w: %v", ErrMediaDownload, err)
	}
	return file.Name(), nil
}

// extensionForContentType maps audio content types to file extensions.
func extensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "mpeg"), strings.Contains(contentType, "mp3"):
		return ".mp3"
	case strings.Contains(contentType, "ogg"):
		return ".ogg"
	case strings.Contains(contentType, "wav"):
		return ".wav"
	default:
		return ".audio"
	}
}

// twimlResponse is the XML document Twilio expects back from a webhook.
type twimlResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// RenderTwiML builds a TwiML reply containing the given messages.
func RenderTwiML(messages ...string) string {
	doc := twimlResponse{Messages: messages}
	out, err := xml.Marshal(doc)
	if err != nil {
		return xml.Header + "<Response></Response>"
	}
	return xml.Header + string(out)
}
