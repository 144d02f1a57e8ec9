// Package i18n provides localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"text/template"
)

// Code mirrors the string value of an error code.
type Code = string

// Catalog holds the user-facing messages for one locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, applying metadata to the message
// template. Unknown codes fall back to a generic message; template failures
// fall back to the raw message text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		return c.messages[CodeUnknown]
	}
	if len(metadata) == 0 {
		return msg
	}

	tmpl, err := template.New("msg").Parse(msg)
	if err != nil {
		return msg
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return msg
	}
	return buf.String()
}

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	switch locale {
	case "en-US", "":
		return enUSCatalog
	default:
		return enUSCatalog
	}
}
