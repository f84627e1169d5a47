package clipper

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"mealmaster/internal/ghost"
	"mealmaster/internal/logging"
	"mealmaster/internal/recipe"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipe is returned when a page has neither a title nor ingredients.
var ErrNoRecipe = errors.New("no recipe found on page")

var (
	ingredientsHeading  = regexp.MustCompile(`(?i)ingredient|zutaten`)
	instructionsHeading = regexp.MustCompile(`(?i)instruction|method|direction|preparation|zubereitung`)
)

// Clipper fetches recipe pages and turns them into drafts.
type Clipper struct {
	httpClient  *http.Client
	ghostClient ghost.Client
}

// NewClipper creates a new Clipper. ghostClient may be nil, in which case
// clipped recipes are not published anywhere.
func NewClipper(ghostClient ghost.Client) *Clipper {
	return &Clipper{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		ghostClient: ghostClient,
	}
}

// ClipURL fetches the page at url and extracts a recipe draft from it. When a
// Ghost client is configured the draft is also published as a post; a failed
// publish is logged and does not fail the clip.
func (c *Clipper) ClipURL(ctx context.Context, url string) (recipe.Draft, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return recipe.Draft{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "mealmaster/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return recipe.Draft{}, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return recipe.Draft{}, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	draft, err := ParseHTML(resp.Body)
	if err != nil {
		return recipe.Draft{}, err
	}
	draft.SourceURL = url

	if c.ghostClient != nil {
		post, err := c.ghostClient.CreatePost(ctx, draft.Title, FormatHTML(draft), true)
		if err != nil {
			logging.Warn().Err(err).Str("url", url).Msg("failed to publish clipped recipe to ghost")
		} else {
			logging.Info().Str("post_id", post.ID).Str("title", draft.Title).Msg("clipped recipe published to ghost")
		}
	}

	return draft, nil
}

// ParseHTML extracts a recipe from a page. schema.org Recipe microdata is
// preferred; otherwise lists following "Ingredients" and "Instructions"
// headings are used, and the first h1 becomes the title.
func ParseHTML(r io.Reader) (recipe.Draft, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return recipe.Draft{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Remove()

	draft := recipe.Draft{
		Title:        extractTitle(doc),
		Instructions: extractInstructions(doc),
	}
	for _, text := range extractIngredients(doc) {
		if line := recipe.ParseLine(text); line.Name != "" {
			draft.Lines = append(draft.Lines, line)
		}
	}

	if draft.Title == "" && len(draft.Lines) == 0 {
		return recipe.Draft{}, ErrNoRecipe
	}
	if draft.Title == "" {
		draft.Title = "Untitled recipe"
	}
	return draft, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := cleanText(doc.Find(`[itemtype*="schema.org/Recipe"] [itemprop="name"]`).First().Text()); t != "" {
		return t
	}
	if t := cleanText(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return cleanText(doc.Find("title").First().Text())
}

func extractIngredients(doc *goquery.Document) []string {
	var lines []string
	doc.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if t := cleanText(s.Text()); t != "" {
			lines = append(lines, t)
		}
	})
	if len(lines) > 0 {
		return lines
	}
	return listAfterHeading(doc, ingredientsHeading)
}

func extractInstructions(doc *goquery.Document) string {
	var steps []string
	doc.Find(`[itemprop="recipeInstructions"]`).Each(func(_ int, s *goquery.Selection) {
		if items := s.Find("li"); items.Length() > 0 {
			items.Each(func(_ int, li *goquery.Selection) {
				if t := cleanText(li.Text()); t != "" {
					steps = append(steps, t)
				}
			})
			return
		}
		if t := cleanText(s.Text()); t != "" {
			steps = append(steps, t)
		}
	})
	if len(steps) == 0 {
		steps = listAfterHeading(doc, instructionsHeading)
	}
	return strings.Join(steps, "\n")
}

// listAfterHeading returns the entries of the first list or run of
// paragraphs following a heading whose text matches re.
func listAfterHeading(doc *goquery.Document, re *regexp.Regexp) []string {
	var out []string
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !re.MatchString(h.Text()) {
			return true
		}

		for s := h.Next(); s.Length() > 0; s = s.Next() {
			if goquery.NodeName(s) == "h1" || goquery.NodeName(s) == "h2" || goquery.NodeName(s) == "h3" || goquery.NodeName(s) == "h4" {
				break
			}
			if s.Is("ul, ol") {
				s.Find("li").Each(func(_ int, li *goquery.Selection) {
					if t := cleanText(li.Text()); t != "" {
						out = append(out, t)
					}
				})
				break
			}
			if t := cleanText(s.Text()); t != "" {
				out = append(out, t)
			}
		}
		return len(out) == 0
	})
	return out
}

// FormatHTML renders a draft as post HTML that ParseHTML can read back.
func FormatHTML(d recipe.Draft) string {
	var sb strings.Builder
	if d.SourceURL != "" {
		src := html.EscapeString(d.SourceURL)
		fmt.Fprintf(&sb, `<p><i>Imported from: <a href="%s">%s</a></i></p>`, src, src)
	}

	sb.WriteString("<h2>Ingredients</h2><ul>")
	for _, line := range d.Lines {
		fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(line.String()))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Instructions</h2><ol>")
	for _, step := range strings.Split(d.Instructions, "\n") {
		if step = strings.TrimSpace(step); step != "" {
			fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(step))
		}
	}
	sb.WriteString("</ol>")

	return sb.String()
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
