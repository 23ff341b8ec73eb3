package browser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/iancoleman/strcase"
)

var ErrUnknownKind = errors.New("unknown folder kind")

// Kind is the kind of folder a dialog selects.
type Kind string

const (
	KindRTTM  Kind = "rttm"
	KindAudio Kind = "audio"
)

// Kinds lists every known [Kind].
var Kinds = []Kind{KindRTTM, KindAudio}

// ParseKind parses a kind name, ignoring case and surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Label is the human readable name of the kind.
func (k Kind) Label() string {
	if k == KindRTTM {
		return "RTTM"
	}

	return strcase.ToCamel(string(k))
}

// DialogFor returns the dialog ID used for browsing folders of kind k, e.g.
// "rttm-browser".
func DialogFor(k Kind) string {
	return strcase.ToKebab(string(k) + " browser")
}

// KindOf maps a dialog ID back to its [Kind].
func KindOf(dialogID string) (Kind, bool) {
	for _, k := range Kinds {
		if DialogFor(k) == dialogID {
			return k, true
		}
	}

	return "", false
}

// DialogURL returns the URL of the browse dialog under base.
func DialogURL(base, startPath, dialogID string) string {
	q := url.Values{}
	q.Set("start_path", startPath)
	q.Set("dialog_id", dialogID)

	return strings.TrimRight(base, "/") + "/browse_dialog?" + q.Encode()
}
