package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

const DefaultModel = "gemini-1.5-flash"

// Kinds of copy the assistant drafts.
const (
	KindProduct = "product"
	KindBlog    = "blog"
)

var ErrEmptyResponse = errors.New("ai: empty response")

// Request is one drafting job from the admin dashboard.
type Request struct {
	Kind  string
	Title string
	Notes string
}

// Describer drafts marketing copy. Handlers depend on this instead of the
// Gemini client so the endpoint can be exercised without network access.
type Describer interface {
	Describe(ctx context.Context, req Request) (string, int, error)
}

// Service drafts copy with Gemini, grounding the prompt in the site's own
// settings and product types.
type Service struct {
	Client *genai.Client
	DB     *gorm.DB
	Model  string
}

// NewService initializes the Gemini client.
func NewService(ctx context.Context, apiKey, model string, db *gorm.DB) (*Service, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Service{Client: client, DB: db, Model: model}, nil
}

func (s *Service) Close() error { return s.Client.Close() }

// Describe returns the drafted text and the total tokens used.
func (s *Service) Describe(ctx context.Context, req Request) (string, int, error) {
	// 1. Collect site context
	siteName, types, err := s.siteContext(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("error loading site context: %w", err)
	}

	// 2. Configure the model
	model := s.Client.GenerativeModel(s.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction(siteName, types))},
	}
	model.SetTemperature(0.7)

	// 3. Generate
	res, err := model.GenerateContent(ctx, genai.Text(Prompt(req)))
	if err != nil {
		return "", 0, fmt.Errorf("error generating content: %w", err)
	}

	tokens := 0
	if res.UsageMetadata != nil {
		tokens = int(res.UsageMetadata.TotalTokenCount)
	}

	// 4. Join the text parts of the first candidate
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", tokens, ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", tokens, ErrEmptyResponse
	}
	return out, tokens, nil
}

// siteContext reads the site name (defaults until settings are saved) and
// the active product type names.
func (s *Service) siteContext(ctx context.Context) (string, []string, error) {
	siteName := models.DefaultSettings().SiteName
	if s.DB == nil {
		return siteName, nil, nil
	}

	var settings models.Settings
	err := s.DB.WithContext(ctx).Select("site_name").First(&settings, 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return "", nil, err
	case settings.SiteName != "":
		siteName = settings.SiteName
	}

	var types []string
	err = s.DB.WithContext(ctx).Model(&models.ProductType{}).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Pluck("name", &types).Error
	if err != nil {
		return "", nil, err
	}
	return siteName, types, nil
}

// SystemInstruction describes the assistant's role for one site.
func SystemInstruction(siteName string, productTypes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You write website copy for %s, a Haji and Umroh travel agency.\n", siteName)
	if len(productTypes) > 0 {
		fmt.Fprintf(&b, "The agency sells these package types: %s.\n", strings.Join(productTypes, ", "))
	}
	b.WriteString("Write in a warm, trustworthy tone. Do not invent prices, dates or hotel names that are not given. Reply with the copy only, no headings.")
	return b.String()
}

// Prompt builds the user turn for a request.
func Prompt(req Request) string {
	var b strings.Builder
	switch req.Kind {
	case KindBlog:
		fmt.Fprintf(&b, "Write a blog post excerpt of two or three sentences titled %q.", req.Title)
	default:
		fmt.Fprintf(&b, "Write a product description of one short paragraph for the travel package %q.", req.Title)
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		fmt.Fprintf(&b, "\nDetails to include:\n%s", notes)
	}
	return b.String()
}
