package chatbot

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"varal/internal/domain"
	"varal/internal/infra"
)

// DefaultAnswer is returned when no knowledge-base entry matches.
const DefaultAnswer = "Desculpe, ainda não sei responder isso. Pergunte sobre cartinhas, adoções, pontos de coleta ou eventos."

// Bot answers visitor questions by keyword-matching against the
// cloudinho_kb table. It is stateless: the knowledge base is fetched
// per question.
type Bot struct {
	kb     domain.KnowledgeBaseRepository
	logger *infra.Logger
}

// New creates a Bot.
func New(kb domain.KnowledgeBaseRepository, logger *infra.Logger) *Bot {
	if logger == nil {
		discard := zerolog.Nop()
		l := infra.Logger(discard)
		logger = &l
	}
	return &Bot{kb: kb, logger: logger}
}

// Answer picks the entry whose keywords best match the question. The
// comparison ignores case and accents, so "doação" matches "doacao".
func (b *Bot) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: pergunta vazia", domain.ErrInvalidRequest)
	}
	entries, err := b.kb.List(ctx)
	if err != nil {
		return "", fmt.Errorf("consultar base de conhecimento: %w", err)
	}

	normalized := Normalize(question)
	best := ""
	bestScore := 0
	for _, entry := range entries {
		score := 0
		for _, keyword := range entry.Keywords {
			if keyword = Normalize(keyword); keyword == "" {
				continue
			}
			if strings.Contains(normalized, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.Answer
		}
	}
	if bestScore == 0 {
		b.logger.Debug().Str("pergunta", question).Msg("cloudinho: nenhuma resposta encontrada")
		return DefaultAnswer, nil
	}
	return best, nil
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases and strips diacritics for keyword comparison.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
