package assistant

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/komorebi/internal/library"
	"github.com/verte-zerg/komorebi/internal/model"
)

// SelectContext picks the mental models, productivity techniques and quotes
// that share a keyword with the query.
func SelectContext(query string, lib model.Library) ([]model.LibraryItem, []string) {
	match := library.Matcher(library.Keywords(query))
	items := library.FilterItems(lib.MentalModels, match)
	items = append(items, library.FilterItems(lib.Productivity, match)...)
	return items, library.FilterQuotes(lib.Quotes, match)
}

// FullContext is the whole mental model and productivity library plus every quote.
func FullContext(lib model.Library) ([]model.LibraryItem, []string) {
	items := make([]model.LibraryItem, 0, len(lib.MentalModels)+len(lib.Productivity))
	items = append(items, lib.MentalModels...)
	items = append(items, lib.Productivity...)
	return items, append([]string(nil), lib.Quotes...)
}

// BuildContext renders library entries, quotes and retrieved documents as the
// context block sent ahead of the user query.
func BuildContext(items []model.LibraryItem, quotes []string, docs []Document) string {
	var b strings.Builder
	b.WriteString("LOCAL LIBRARY KNOWLEDGE:\n")
	for _, it := range items {
		detail := it.Desc
		if detail == "" {
			detail = it.Resource
		}
		fmt.Fprintf(&b, "- %s: %s\n", it.Name, detail)
	}
	b.WriteString("\nRELEVANT QUOTES:\n")
	for _, q := range quotes {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\nBRAIN DOCUMENTS (Retrieved from Database):\n")
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (Source: %s)\n", d.Content, d.SourceTitle())
	}
	return b.String()
}

// UserPrompt joins the context block and the query.
func UserPrompt(contextText, query string) string {
	return "Context:\n" + contextText + "\n\nUser Query: " + query
}

// SystemInstruction describes the assistant's voice for a persona.
func SystemInstruction(p model.PersonaConfig) string {
	return fmt.Sprintf(`You are the %[1]s Spirit, embodying the archetype of the %[2]s.
Your sacred symbol is the %[3]s, representing your core essence and grounding.

Your Tone:
- Authoritative but encouraging.
- Disciplined, focusing on agency, action, and high standards.
- Mystical but grounded in reality.
- Concise. Do not waffle.

Your Goal:
- Answer the user's query based on the provided Context (Local Library + Brain Documents).
- Interpret the user's struggle or question through the lens of a %[2]s.
- Use metaphors related to the %[1]s or %[3]s where appropriate, but do not overdo it.
- ALWAYS cite sources if you use information from "BRAIN DOCUMENTS".
- Always link the advice back to taking action, discipline, or clarity of thought.
- If the user asks about the "OS" or "System", refer to the Komorebi protocols.
`, p.Anima, p.Archetype, p.Symbol)
}

// SilentAnswer is returned when the model produces no text.
func SilentAnswer(p model.PersonaConfig) string {
	return fmt.Sprintf("The %s is silent. (No response text)", p.Anima)
}

// ExploreKind names a daily card that can be explored.
type ExploreKind string

const (
	ExploreModel        ExploreKind = "model"
	ExploreProductivity ExploreKind = "productivity"
	ExploreQuote        ExploreKind = "quote"
	ExploreInvestor     ExploreKind = "investor"
	ExploreWorkout      ExploreKind = "workout"
)

// ExploreKinds lists the kinds in display order.
var ExploreKinds = []ExploreKind{ExploreModel, ExploreProductivity, ExploreQuote, ExploreInvestor, ExploreWorkout}

// ErrNothingToExplore is returned when the chosen daily card is empty.
var ErrNothingToExplore = fmt.Errorf("nothing to explore")

// ExploreInput carries the day's picks for prompt construction.
type ExploreInput struct {
	Model        *model.LibraryItem
	Productivity *model.LibraryItem
	Quote        *string
	Investor     *model.LibraryItem
	Workout      model.Workout
}

// ExplorePrompt returns the deep-dive prompt for one daily card.
func ExplorePrompt(kind ExploreKind, in ExploreInput) (string, error) {
	switch kind {
	case ExploreModel:
		if in.Model == nil {
			return "", fmt.Errorf("%w: no mental model today", ErrNothingToExplore)
		}
		return fmt.Sprintf(`Explain the mental model "%s" in depth. How can I apply it to solve difficult problems today? Provide a concrete example.`, in.Model.Name), nil
	case ExploreProductivity:
		if in.Productivity == nil {
			return "", fmt.Errorf("%w: no productivity technique today", ErrNothingToExplore)
		}
		return fmt.Sprintf(`How do I effectively implement the "%s" productivity technique? Give me a step-by-step guide or checklist.`, in.Productivity.Name), nil
	case ExploreQuote:
		if in.Quote == nil {
			return "", fmt.Errorf("%w: no quote today", ErrNothingToExplore)
		}
		return fmt.Sprintf(`Analyze this quote: "%s". Who said it, what is the historical context, and how does it relate to Stoicism or high performance? Provide a complementary quote.`, *in.Quote), nil
	case ExploreInvestor:
		if in.Investor == nil {
			return "", fmt.Errorf("%w: no investor this week", ErrNothingToExplore)
		}
		return fmt.Sprintf(`Tell me about the investment philosophy of %s. What are their key principles found in "%s"? How can I apply this mindset?`, in.Investor.Name, in.Investor.Resource), nil
	case ExploreWorkout:
		return fmt.Sprintf(`Generate a specific, high-intensity %s workout routine based on this description: "%s". I am an advanced athlete. Include warmup, main sets, and cooldown.`, in.Workout.Title, in.Workout.Desc), nil
	default:
		return "", fmt.Errorf("unknown explore kind %q", kind)
	}
}
