// Package scanner finds diagram references in document text.
package scanner

import (
	"regexp"
	"strings"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
)

// validPayload is the structural shape of a reference payload.
var validPayload = regexp.MustCompile(`^[A-Za-z0-9_-]+={0,2}$`)

// Scanner finds raw diagram references for one host.
type Scanner struct {
	host      string
	candidate *regexp.Regexp
	logger    ports.Logger
}

// New creates a Scanner recognising references on host.
func New(host string, logger ports.Logger) *Scanner {
	// Candidates also take the standard base64 alphabet and stray padding,
	// so a payload in the wrong shape is reported instead of silently truncated.
	prefix := regexp.QuoteMeta("https://" + host + "/" + domain.FragmentKey)
	return &Scanner{
		host:      host,
		candidate: regexp.MustCompile(prefix + `([A-Za-z0-9_\-+/=]*)`),
		logger:    logger,
	}
}

// Host returns the host the scanner recognises.
func (s *Scanner) Host() string {
	return s.host
}

// Scan returns the raw references in text, ordered by start offset.
// References already used as a link destination are skipped, and
// malformed candidates are logged and dropped.
func (s *Scanner) Scan(text string) []domain.ReferenceMatch {
	locs := s.candidate.FindAllStringSubmatchIndex(text, -1)
	matches := make([]domain.ReferenceMatch, 0, len(locs))

	for _, loc := range locs {
		start, end := loc[0], loc[1]
		url := text[start:end]
		payload := text[loc[2]:loc[3]]

		if isLinkDestination(text, start) {
			continue
		}

		if !validPayload.MatchString(payload) || len(strings.TrimRight(payload, "="))%4 == 1 {
			err := domain.NewURLParseError(url, zerr.With(domain.ErrMalformedPayload, "offset", start))
			s.logger.Warn(err.Error() + "; " + err.Hint)
			continue
		}

		matches = append(matches, domain.ReferenceMatch{
			URL:     url,
			Payload: payload,
			Span:    domain.Span{Start: start, End: end},
		})
	}

	return matches
}

// isLinkDestination reports whether the URL starting at start directly follows "](" or "](<".
func isLinkDestination(text string, start int) bool {
	before := text[:start]
	return strings.HasSuffix(before, "](") || strings.HasSuffix(before, "](<")
}
