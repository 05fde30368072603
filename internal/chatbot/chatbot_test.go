package chatbot

import (
	"context"
	"errors"
	"testing"

	"varal/internal/domain"
)

type fakeKB struct {
	entries []domain.KBEntry
	err     error
}

func (f *fakeKB) List(ctx context.Context) ([]domain.KBEntry, error) {
	return f.entries, f.err
}

func testEntries() []domain.KBEntry {
	return []domain.KBEntry{
		{ID: "kb1", Keywords: []string{"adoção", "adotar", "cartinha"}, Answer: "Para adotar, escolha uma cartinha no varal e confirme no carrinho."},
		{ID: "kb2", Keywords: []string{"ponto", "coleta", "entrega"}, Answer: "Os pontos de coleta estão na página Pontos de Coleta."},
		{ID: "kb3", Keywords: []string{"evento"}, Answer: "Veja a agenda completa na página Eventos."},
	}
}

func TestAnswerMatchesIgnoringAccents(t *testing.T) {
	bot := New(&fakeKB{entries: testEntries()}, nil)

	answer, err := bot.Answer(context.Background(), "Como faço uma adocao?")
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if answer != testEntries()[0].Answer {
		t.Fatalf("answer = %q, want adoption entry", answer)
	}
}

func TestAnswerPrefersMoreKeywordHits(t *testing.T) {
	bot := New(&fakeKB{entries: testEntries()}, nil)

	answer, err := bot.Answer(context.Background(), "Onde fica o ponto de coleta para entrega?")
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if answer != testEntries()[1].Answer {
		t.Fatalf("answer = %q, want collection point entry", answer)
	}
}

func TestAnswerFallsBackToDefault(t *testing.T) {
	bot := New(&fakeKB{entries: testEntries()}, nil)

	answer, err := bot.Answer(context.Background(), "qual a previsão do tempo?")
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}
	if answer != DefaultAnswer {
		t.Fatalf("answer = %q, want default", answer)
	}
}

func TestAnswerRejectsEmptyQuestion(t *testing.T) {
	bot := New(&fakeKB{entries: testEntries()}, nil)

	if _, err := bot.Answer(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("Answer error = %v, want ErrInvalidRequest", err)
	}
}

func TestAnswerPropagatesStoreFailure(t *testing.T) {
	bot := New(&fakeKB{err: errors.New("store unavailable")}, nil)

	if _, err := bot.Answer(context.Background(), "adotar"); err == nil {
		t.Fatalf("Answer should propagate store failure")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Doação", "doacao"},
		{"  CRIANÇA  ", "crianca"},
		{"já", "ja"},
		{"evento", "evento"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
