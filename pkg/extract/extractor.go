package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/pkg/news"
)

const (
	UntitledArticle = "Untitled Article"

	// MinCandidateChars is how much cleaned text a container needs before it is
	// trusted as the article body.
	MinCandidateChars = 1000
	MaxContentChars   = 8000

	maxPageBytes = 5 << 20
	userAgent    = "Mozilla/5.0 (compatible; BiasBuster/1.0)"
)

const nonContentSelectors = "style, script, header, footer, nav, aside, form, iframe"

var containerPattern = regexp.MustCompile(`(?i)article|post|content|entry|main`)

// Methods report which branch produced the content.
const (
	MethodArticle     = "article"
	MethodDivClass    = "div-class"
	MethodDivID       = "div-id"
	MethodSection     = "section"
	MethodReadability = "readability"
	MethodBody        = "body"
)

type Result struct {
	Title   string
	Source  string
	Content string
	Method  string
}

// FetchError is returned when the page could not be retrieved.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Extractor struct {
	httpClient *http.Client
}

func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Extract downloads pageURL and pulls out its title, outlet name and main text.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Result, error) {
	if _, err := url.ParseRequestURI(pageURL); err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	return e.ExtractHTML(pageURL, io.LimitReader(resp.Body, maxPageBytes))
}

// ExtractHTML runs extraction on a page that was already fetched.
func (e *Extractor) ExtractHTML(pageURL string, r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	parsedURL, _ := url.Parse(pageURL)

	result := &Result{
		Title:  pageTitle(doc),
		Source: sourceName(parsedURL),
	}

	doc.Find(nonContentSelectors).Remove()

	content, method := candidateText(doc)
	if method == "" {
		content, method = readabilityText(raw, parsedURL)
	}
	if method == "" {
		content, method = bodyText(doc), MethodBody
	}

	result.Content = truncate(content, MaxContentChars)
	result.Method = method
	return result, nil
}

func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return UntitledArticle
}

func sourceName(u *url.URL) string {
	if u == nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return news.DisplayName(host)
}

func candidateText(doc *goquery.Document) (string, string) {
	candidates := []struct {
		method string
		sel    *goquery.Selection
	}{
		{MethodArticle, doc.Find("article").First()},
		{MethodDivClass, firstMatching(doc.Find("div[class]"), "class")},
		{MethodDivID, firstMatching(doc.Find("div[id]"), "id")},
		{MethodSection, firstMatching(doc.Find("section[class]"), "class")},
	}

	for _, c := range candidates {
		if c.sel.Length() == 0 {
			continue
		}
		text := cleanText(c.sel)
		if len([]rune(text)) > MinCandidateChars {
			return text, c.method
		}
	}
	return "", ""
}

func firstMatching(sel *goquery.Selection, attr string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return containerPattern.MatchString(s.AttrOr(attr, ""))
	}).First()
}

func readabilityText(raw []byte, pageURL *url.URL) (string, string) {
	if pageURL == nil {
		return "", ""
	}

	article, err := readability.FromReader(bytes.NewReader(raw), pageURL)
	if err != nil {
		return "", ""
	}

	text := normalize(article.TextContent)
	if len([]rune(text)) <= MinCandidateChars {
		return "", ""
	}
	return text, MethodReadability
}

func bodyText(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return cleanText(doc.Selection)
	}
	return cleanText(body)
}

// cleanText renders a selection as plain text. Paragraphs, headings and <br>
// end a line; every other tag boundary becomes a space.
func cleanText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		renderText(&sb, n)
	}
	return normalize(sb.String())
}

func renderText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	if n.Type == html.ElementNode && n.Data == "br" {
		sb.WriteString("\n")
		return
	}

	if n.Type == html.ElementNode {
		sb.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(sb, c)
	}
	if n.Type == html.ElementNode {
		if endsLine(n.Data) {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
}

func endsLine(tag string) bool {
	switch tag {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// normalize collapses runs of horizontal whitespace, drops blank lines and
// trims the result.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r", "")

	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
