package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
)

// WeaviateKnowledgeBase searches a Weaviate class by vector.
type WeaviateKnowledgeBase struct {
	client    *weaviate.Client
	className string
}

// NewWeaviateKnowledgeBase connects to the Weaviate instance at rawURL.
func NewWeaviateKnowledgeBase(rawURL, className string) (*WeaviateKnowledgeBase, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid weaviate url %q", rawURL)
	}
	if className == "" {
		className = "Document"
	}
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   parsed.Host,
		Scheme: parsed.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &WeaviateKnowledgeBase{client: client, className: className}, nil
}

// Search implements KnowledgeBase. Only hits at or above threshold certainty are returned.
func (w *WeaviateKnowledgeBase) Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]Document, error) {
	nearVector := w.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector).
		WithCertainty(float32(threshold))

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "title"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "id"},
			{Name: "certainty"},
		}},
	}

	result, err := w.client.GraphQL().Get().
		WithClassName(w.className).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate search failed: %w", err)
	}
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			if e != nil {
				msgs = append(msgs, e.Message)
			}
		}
		return nil, fmt.Errorf("weaviate search failed: %s", strings.Join(msgs, "; "))
	}

	raw, err := json.Marshal(result.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL response data: %w", err)
	}
	return parseDocuments(raw, w.className, threshold)
}

type documentHit struct {
	Content    string `json:"content"`
	Title      string `json:"title"`
	Additional struct {
		ID        string   `json:"id"`
		Certainty *float64 `json:"certainty"`
	} `json:"_additional"`
}

// parseDocuments decodes the Get.<class> array of a GraphQL response.
func parseDocuments(data []byte, className string, threshold float64) ([]Document, error) {
	var resp struct {
		Get map[string][]documentHit `json:"Get"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	hits := resp.Get[className]
	docs := make([]Document, 0, len(hits))
	for _, h := range hits {
		doc := Document{ID: h.Additional.ID, Content: h.Content, Title: h.Title}
		if h.Additional.Certainty != nil {
			doc.Certainty = *h.Additional.Certainty
			if doc.Certainty < threshold {
				continue
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
