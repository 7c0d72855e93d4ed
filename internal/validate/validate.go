// Package validate holds the per-field request validation rules. Rules run
// in a fixed field order and the first violation wins; all violations map
// onto the links error taxonomy before any business logic executes.
package validate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/act-now-coalition/act-now-links/internal/links"
)

// EmailMode selects the email validation rule.
type EmailMode int

const (
	// EmailPermissive accepts any value containing an "@". This is the
	// documented default behavior.
	EmailPermissive EmailMode = iota

	// EmailStrict applies the historical address regex.
	EmailStrict
)

// ParseEmailMode maps a config string onto an EmailMode, defaulting to
// permissive for unrecognized values.
func ParseEmailMode(s string) EmailMode {
	if strings.EqualFold(s, "strict") {
		return EmailStrict
	}
	return EmailPermissive
}

var strictEmailRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

// IsValidURL reports whether s parses as an absolute URL with scheme
// http or https.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidEmail reports whether s passes the email rule for the given mode.
func IsValidEmail(s string, mode EmailMode) bool {
	if mode == EmailStrict {
		return strictEmailRe.MatchString(s)
	}
	return strings.Contains(s, "@")
}

// ShareLinkFields checks a registration payload in fixed order: url,
// imageUrl, imageHeight, imageWidth (title and description accept any
// string). Returns nil or the taxonomy error for the first violation.
func ShareLinkFields(f links.ShareLinkFields) error {
	if !IsValidURL(f.URL) {
		return links.NewError(links.CodeInvalidURL)
	}
	if f.ImageURL != "" && !IsValidURL(f.ImageURL) {
		return links.NewError(links.CodeInvalidURL)
	}
	if f.ImageHeight != nil && *f.ImageHeight < 0 {
		return links.NewErrorf(links.CodeValidationError, "imageHeight: %d", *f.ImageHeight)
	}
	if f.ImageWidth != nil && *f.ImageWidth < 0 {
		return links.NewErrorf(links.CodeValidationError, "imageWidth: %d", *f.ImageWidth)
	}
	return nil
}

// Email checks an email field, mapping a violation to INVALID_EMAIL.
func Email(email string, mode EmailMode) error {
	if !IsValidEmail(email, mode) {
		return links.NewError(links.CodeInvalidEmail)
	}
	return nil
}

// Enabled checks the enabled field of a key-modification request. The
// field is strict: it must be present as a JSON boolean, decoded into a
// *bool upstream. nil means absent or non-boolean.
func Enabled(enabled *bool) error {
	if enabled == nil {
		return links.NewErrorf(links.CodeValidationError, "enabled: must be a boolean")
	}
	return nil
}
