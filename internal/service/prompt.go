package service

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"macro-outlook/internal/domain"
)

// DefaultPromptTemplate asks for a 3-5 year macroeconomic outlook for a
// bank's medium-term planning. {{.Corpus}} is replaced verbatim.
const DefaultPromptTemplate = `Du bist ein volkswirtschaftlicher Analyst einer Bank.
Erstelle einen **detaillierten volkswirtschaftlichen Ausblick** für die nächsten 3–5 Jahre
für die **Mittelfristplanung einer Bank** auf Basis folgender Texte:

---
{{.Corpus}}
---

Berücksichtige:
- BIP-Wachstum (global, EU, Deutschland)
- Inflationstrends und -risiken
- Leitzinsprognosen (EZB, FED)
- Arbeitsmarkt
- Immobilien- und Finanzmärkte
- Politische/geopolitische Risiken
- Risiken & Chancen für Banken

Struktur:
1. Makroökonomisches Umfeld
2. Kapitalmärkte & Zinsen
3. Auswirkungen auf Banken
4. Relevante Annahmen für Mittelfristplanung
5. Fazit / Handlungsempfehlungen
`

type promptData struct {
	Corpus string
}

// TemplatePromptComposer truncates the corpus and interpolates it into a text/template
type TemplatePromptComposer struct {
	tmpl  *template.Template
	limit int
}

// NewPromptComposer parses templateText (DefaultPromptTemplate when empty).
// limit is the maximum number of corpus characters kept.
func NewPromptComposer(templateText string, limit int) (*TemplatePromptComposer, error) {
	if templateText == "" {
		templateText = DefaultPromptTemplate
	}
	if limit <= 0 {
		return nil, fmt.Errorf("corpus limit must be positive, got %d", limit)
	}
	tmpl, err := template.New("outlook").Option("missingkey=error").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template: %w", err)
	}
	// Catch references to fields other than Corpus before serving.
	if err := tmpl.Execute(&bytes.Buffer{}, promptData{}); err != nil {
		return nil, fmt.Errorf("executing prompt template: %w", err)
	}
	return &TemplatePromptComposer{tmpl: tmpl, limit: limit}, nil
}

// LoadPromptTemplate reads a template file; an empty path yields the default template
func LoadPromptTemplate(path string) (string, error) {
	if path == "" {
		return DefaultPromptTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading prompt template %s: %w", path, err)
	}
	return string(data), nil
}

// Compose returns the prompt for corpus
func (c *TemplatePromptComposer) Compose(corpus string) (*domain.Prompt, error) {
	kept, truncated := truncateChars(corpus, c.limit)

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, promptData{Corpus: kept}); err != nil {
		return nil, fmt.Errorf("executing prompt template: %w", err)
	}
	return &domain.Prompt{
		Text:        buf.String(),
		CorpusChars: len([]rune(kept)),
		Truncated:   truncated,
	}, nil
}

// truncateChars keeps the first limit code points of s
func truncateChars(s string, limit int) (string, bool) {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}
