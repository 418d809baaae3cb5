package knowledge

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultMaxChars = 12000

	// Binary sniffing: sample size and the suspicious-byte ratio above
	// which a payload is discarded instead of decoded as text.
	binarySampleSize    = 4096
	binarySuspiciousPct = 0.20
)

// Block is one labeled reference document ready for prompt embedding.
type Block struct {
	Label string
	Text  string
}

// Store fetches reference documents and remembers the outcome for the
// lifetime of the process. Failures are cached too, so a source proven
// unfetchable is never retried.
type Store struct {
	fileFetcher Fetcher
	httpFetcher Fetcher
	maxChars    int
	logger      *zerolog.Logger

	mu    sync.Mutex
	cache map[string]*string
}

func NewStore(fileFetcher, httpFetcher Fetcher, maxChars int, logger *zerolog.Logger) *Store {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &Store{
		fileFetcher: fileFetcher,
		httpFetcher: httpFetcher,
		maxChars:    maxChars,
		logger:      logger,
		cache:       make(map[string]*string),
	}
}

// Load fetches every source (cache first), then concatenates the labeled
// blocks in input order under the character budget. Sources that fail for
// any reason are advisory content and are silently skipped.
func (s *Store) Load(ctx context.Context, sources []string) (string, []string) {
	var blocks []string
	var labels []string
	used := 0

	for _, source := range sources {
		text := s.fetchCached(ctx, source)
		if text == nil {
			continue
		}

		remaining := s.maxChars - used
		if remaining <= 0 {
			break
		}

		body := *text
		if len(body) > remaining {
			body = body[:remaining]
		}

		label := sourceLabel(source)
		blocks = append(blocks, "From "+label+":\n"+body)
		labels = append(labels, label)
		used += len(body)
	}

	return strings.Join(blocks, "\n\n"), labels
}

// fetchCached returns the cached document text, fetching on first use.
// A nil entry marks a known-failed source.
func (s *Store) fetchCached(ctx context.Context, source string) *string {
	s.mu.Lock()
	if cached, ok := s.cache[source]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	text := s.fetch(ctx, source)

	s.mu.Lock()
	s.cache[source] = text
	s.mu.Unlock()

	return text
}

func (s *Store) fetch(ctx context.Context, source string) *string {
	fetcher := s.httpFetcher
	if strings.HasPrefix(source, "/") {
		fetcher = s.fileFetcher
	}

	data, err := fetcher.Fetch(ctx, source)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", source).Msg("knowledge source unavailable, skipping")
		return nil
	}

	if len(data) == 0 {
		s.logger.Warn().Str("source", source).Msg("knowledge source empty, skipping")
		return nil
	}

	if looksBinary(data) {
		s.logger.Warn().Str("source", source).Msg("knowledge source looks binary, skipping")
		return nil
	}

	text := string(data)
	return &text
}

// looksBinary samples the head of the payload and rejects it when too many
// bytes are null or non-printable control codes outside tab..carriage-return.
func looksBinary(data []byte) bool {
	sample := data
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}

	suspicious := 0
	for _, b := range sample {
		if b == 0 || (b < 32 && (b < 9 || b > 13)) {
			suspicious++
		}
	}

	return float64(suspicious) > binarySuspiciousPct*float64(len(sample))
}

// sourceLabel derives a short display label: filesystem paths stay as-is,
// URLs collapse to their last path segment, then hostname, then the raw URL.
func sourceLabel(source string) string {
	if strings.HasPrefix(source, "/") {
		return source
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return source
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last != "" {
		if decoded, err := url.PathUnescape(last); err == nil {
			return decoded
		}
		return last
	}

	if parsed.Host != "" {
		return parsed.Host
	}

	return source
}
