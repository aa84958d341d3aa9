package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bringer/internal/recipe"
)

// Kind selects the ingestion path for raw input.
type Kind string

const (
	KindURL   Kind = "url"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// ValidKind reports whether k names an ingestion path.
func ValidKind(k Kind) bool {
	return k == KindURL || k == KindText || k == KindImage
}

var (
	// ErrFetch means the URL could not be retrieved (network failure or
	// non-2xx response). Bad user input, not a server fault.
	ErrFetch = errors.New("failed to fetch URL content")
	// ErrExtraction means the vision model returned no text for an image.
	ErrExtraction = errors.New("failed to extract text from image")
	// ErrParse means the structured-extraction model returned missing or
	// invalid content. An upstream failure, surfaced as a server error.
	ErrParse = errors.New("failed to parse recipe")
)

// RecipeParser turns working text into a structured recipe.
type RecipeParser interface {
	ParseRecipe(ctx context.Context, text string) (*recipe.Parsed, error)
}

// TextExtractor transcribes a base64-encoded recipe photo.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageData string) (string, error)
}

// Service normalizes raw input (URL, free text or photo) to plain text and
// runs structured extraction on it. At most two external hops, chained
// sequentially with no retries; the first failure surfaces to the caller.
type Service struct {
	parser     RecipeParser
	ocr        TextExtractor
	httpClient *http.Client
	logger     *zap.Logger
}

// NewService creates an ingestion service.
func NewService(parser RecipeParser, ocr TextExtractor, logger *zap.Logger) *Service {
	return &Service{
		parser:     parser,
		ocr:        ocr,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Ingest converts raw input of the given kind into a parsed recipe.
// ExternalLink is set only for URL input.
func (s *Service) Ingest(ctx context.Context, input string, kind Kind) (*recipe.Parsed, error) {
	text := input

	switch kind {
	case KindImage:
		transcript, err := s.ocr.ExtractText(ctx, prepareImage(input))
		if err != nil {
			s.logger.Warn("image transcription failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if transcript == "" {
			return nil, ErrExtraction
		}
		text = transcript

	case KindURL:
		content, err := s.fetchPage(ctx, input)
		if err != nil {
			s.logger.Warn("page fetch failed", zap.String("url", input), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		text = content

	case KindText:
		// Used verbatim.

	default:
		return nil, fmt.Errorf("invalid ingestion kind %q", kind)
	}

	parsed, err := s.parser.ParseRecipe(ctx, text)
	if err != nil {
		s.logger.Error("structured extraction failed", zap.String("kind", string(kind)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if parsed == nil {
		return nil, ErrParse
	}

	if parsed.Ingredients == nil {
		parsed.Ingredients = []recipe.ParsedIngredient{}
	}
	if kind == KindURL {
		parsed.ExternalLink = input
	}
	return parsed, nil
}
