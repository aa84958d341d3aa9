package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bringer/internal/recipe"
)

// mockParser records the text it receives.
type mockParser struct {
	receivedText string
	parsed       *recipe.Parsed
	err          error
}

func (m *mockParser) ParseRecipe(ctx context.Context, text string) (*recipe.Parsed, error) {
	m.receivedText = text
	if m.err != nil {
		return nil, m.err
	}
	return m.parsed, nil
}

// mockExtractor records the image payload it receives.
type mockExtractor struct {
	receivedImage string
	transcript    string
	err           error
}

func (m *mockExtractor) ExtractText(ctx context.Context, imageData string) (string, error) {
	m.receivedImage = imageData
	if m.err != nil {
		return "", m.err
	}
	return m.transcript, nil
}

func newTestService(parser *mockParser, ocr *mockExtractor) *Service {
	return NewService(parser, ocr, zap.NewNop())
}

func TestIngestText(t *testing.T) {
	parser := &mockParser{parsed: &recipe.Parsed{Title: "Tomato Soup"}}
	svc := newTestService(parser, &mockExtractor{})

	input := "Tomato Soup\n\n6 ripe tomatoes\n1 bunch basil\n\nSimmer everything."
	parsed, err := svc.Ingest(context.Background(), input, KindText)
	require.NoError(t, err)

	// Free text goes to the parser verbatim.
	assert.Equal(t, input, parser.receivedText)
	assert.Equal(t, "Tomato Soup", parsed.Title)
	assert.Empty(t, parsed.ExternalLink)
	assert.NotNil(t, parsed.Ingredients)
}

func TestIngestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><style>body { color: red }</style></head>
			<body>
			<nav>Home | About</nav>
			<script>trackVisit();</script>
			<h1>Tomato Soup</h1>
			<p>6 ripe   tomatoes</p>
			<footer>All rights reserved</footer>
			</body></html>`))
	}))
	defer srv.Close()

	parser := &mockParser{parsed: &recipe.Parsed{Title: "Tomato Soup"}}
	svc := newTestService(parser, &mockExtractor{})

	parsed, err := svc.Ingest(context.Background(), srv.URL, KindURL)
	require.NoError(t, err)

	assert.Contains(t, parser.receivedText, "Tomato Soup")
	assert.Contains(t, parser.receivedText, "6 ripe tomatoes")
	assert.NotContains(t, parser.receivedText, "trackVisit")
	assert.NotContains(t, parser.receivedText, "color: red")
	assert.NotContains(t, parser.receivedText, "All rights reserved")

	// The source page is carried on the result for URL input only.
	assert.Equal(t, srv.URL, parsed.ExternalLink)
}

func TestIngestURLTruncatesLongPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + strings.Repeat("word ", 10000) + "</body></html>"))
	}))
	defer srv.Close()

	parser := &mockParser{parsed: &recipe.Parsed{Title: "Long"}}
	svc := newTestService(parser, &mockExtractor{})

	_, err := svc.Ingest(context.Background(), srv.URL, KindURL)
	require.NoError(t, err)

	assert.Len(t, parser.receivedText, maxPageChars+3)
	assert.True(t, strings.HasSuffix(parser.receivedText, "..."))
}

func TestIngestURLFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := newTestService(&mockParser{}, &mockExtractor{})

	_, err := svc.Ingest(context.Background(), srv.URL, KindURL)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestIngestURLUnreachable(t *testing.T) {
	svc := newTestService(&mockParser{}, &mockExtractor{})

	_, err := svc.Ingest(context.Background(), "http://127.0.0.1:1/recipe", KindURL)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestIngestImage(t *testing.T) {
	parser := &mockParser{parsed: &recipe.Parsed{Title: "Tomato Soup"}}
	ocr := &mockExtractor{transcript: "Tomato Soup\n6 ripe tomatoes"}
	svc := newTestService(parser, ocr)

	parsed, err := svc.Ingest(context.Background(), "bm90LWFuLWltYWdl", KindImage)
	require.NoError(t, err)

	// The OCR transcript becomes the parser's working text.
	assert.Equal(t, "Tomato Soup\n6 ripe tomatoes", parser.receivedText)
	assert.Empty(t, parsed.ExternalLink)
}

func TestIngestImageEmptyTranscript(t *testing.T) {
	svc := newTestService(&mockParser{}, &mockExtractor{transcript: ""})

	_, err := svc.Ingest(context.Background(), "bm90LWFuLWltYWdl", KindImage)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestIngestImageOCRFailure(t *testing.T) {
	svc := newTestService(&mockParser{}, &mockExtractor{err: errors.New("model unavailable")})

	_, err := svc.Ingest(context.Background(), "bm90LWFuLWltYWdl", KindImage)
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestIngestParseFailure(t *testing.T) {
	svc := newTestService(&mockParser{err: errors.New("no recipe found")}, &mockExtractor{})

	_, err := svc.Ingest(context.Background(), "some text", KindText)
	assert.ErrorIs(t, err, ErrParse)
}

func TestIngestInvalidKind(t *testing.T) {
	svc := newTestService(&mockParser{}, &mockExtractor{})

	_, err := svc.Ingest(context.Background(), "x", Kind("video"))
	assert.Error(t, err)
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(KindURL))
	assert.True(t, ValidKind(KindText))
	assert.True(t, ValidKind(KindImage))
	assert.False(t, ValidKind(Kind("video")))
	assert.False(t, ValidKind(Kind("")))
}

func TestPrepareImagePassthrough(t *testing.T) {
	// Not base64 at all: left for the model to reject.
	assert.Equal(t, "not base64!!!", prepareImage("not base64!!!"))

	// Valid base64 but not an image: same.
	assert.Equal(t, "bm90LWFuLWltYWdl", prepareImage("bm90LWFuLWltYWdl"))
}

func TestPrepareImageStripsDataURL(t *testing.T) {
	small := encodePNG(t, 100, 50)

	got := prepareImage("data:image/png;base64," + small)
	assert.Equal(t, small, got)
}

func TestPrepareImageDownscalesWidePhotos(t *testing.T) {
	got := prepareImage(encodePNG(t, 3000, 1500))

	data, err := base64.StdEncoding.DecodeString(got)
	require.NoError(t, err)
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, maxImageWidth, img.Bounds().Dx())
}

func encodePNG(t *testing.T, width, height int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
