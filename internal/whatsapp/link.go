package whatsapp

import (
	"net/url"
	"strings"
)

// SendURL builds the compose deep link that opens a chat with `phone` and
// pre-fills the message box with `text`.
func SendURL(baseURL, phone, text string) string {
	query := url.Values{}
	query.Set("phone", phone)
	query.Set("text", text)
	return strings.TrimRight(baseURL, "/") + "/send?" + query.Encode()
}

// HomeURL is the landing page used for the first QR code login.
func HomeURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/"
}
