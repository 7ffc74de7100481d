package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
	"github.com/FAde16-lang/BrandCraft/internal/domain"
)

// fakeChain records the requests it receives and replies with a script.
type fakeChain struct {
	out      string
	provider string
	err      error
	reqs     []ai.TextRequest
}

func (f *fakeChain) Complete(_ context.Context, req ai.TextRequest) (string, string, error) {
	f.reqs = append(f.reqs, req)
	return f.out, f.provider, f.err
}

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.UserProfile{}, &domain.GenerationRecord{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestBrandNames_EndToEnd(t *testing.T) {
	db := newServiceDB(t)
	chain := &fakeChain{out: "1. Emberline\n2. Roastory", provider: "groq"}
	svc := &GenerateService{Chain: chain, Store: &GormStore{DB: db}, ModelName: "llama3-70b-8192"}

	out, err := svc.BrandNames(context.Background(), "sub-1", "specialty coffee", []string{"roast", "origin"}, "modern", "millennials", "")
	if err != nil {
		t.Fatalf("BrandNames: %v", err)
	}
	if out != chain.out {
		t.Fatalf("output = %q", out)
	}

	if len(chain.reqs) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(chain.reqs))
	}
	req := chain.reqs[0]
	if req.Temperature != 0.8 {
		t.Fatalf("temperature = %v, want 0.8", req.Temperature)
	}
	if req.System == "" || !strings.Contains(req.System, "BrandCraft AI") {
		t.Fatalf("system persona missing: %q", req.System)
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "specialty coffee") {
		t.Fatalf("prompt not rendered: %+v", req.Messages)
	}

	// History row recorded with provider and derived label.
	recs, err := (&GormStore{DB: db}).ListGenerations(context.Background(), "sub-1", 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(recs))
	}
	if recs[0].Operation != OpBrandNames || recs[0].Provider != "groq" {
		t.Fatalf("history row: %+v", recs[0])
	}
	if recs[0].Label == "" {
		t.Fatal("label not derived")
	}
}

func TestGenerate_AnonymousSkipsHistory(t *testing.T) {
	db := newServiceDB(t)
	chain := &fakeChain{out: "analysis", provider: "groq"}
	svc := &GenerateService{Chain: chain, Store: &GormStore{DB: db}}

	if _, err := svc.Sentiment(context.Background(), "", "this product is wonderful", ""); err != nil {
		t.Fatalf("Sentiment: %v", err)
	}
	recs, _ := (&GormStore{DB: db}).ListGenerations(context.Background(), "", 10)
	if len(recs) != 0 {
		t.Fatalf("anonymous call recorded history: %d rows", len(recs))
	}
}

func TestGenerate_ProviderFailurePropagatesWithoutHistory(t *testing.T) {
	db := newServiceDB(t)
	chain := &fakeChain{err: errors.New("upstream unavailable")}
	svc := &GenerateService{Chain: chain, Store: &GormStore{DB: db}}

	if _, err := svc.Palette(context.Background(), "sub-1", "Emberline", "", "", "", "", ""); err == nil {
		t.Fatal("expected provider error")
	}
	recs, _ := (&GormStore{DB: db}).ListGenerations(context.Background(), "sub-1", 10)
	if len(recs) != 0 {
		t.Fatalf("failed call recorded history: %d rows", len(recs))
	}
}

func TestChat_BuildsConversation(t *testing.T) {
	chain := &fakeChain{out: "reply", provider: "gemini"}
	svc := &GenerateService{Chain: chain, Store: NewNoopStore()}

	history := []ChatTurn{
		{Role: "user", Content: "What makes a brand premium?"},
		{Role: "assistant", Content: "Consistency and restraint."},
	}
	out, err := svc.Chat(context.Background(), "sub-1", "How do I apply that?", history, "Berlin roastery")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out != "reply" {
		t.Fatalf("output = %q", out)
	}

	req := chain.reqs[0]
	if req.Temperature != 0.7 {
		t.Fatalf("temperature = %v, want 0.7", req.Temperature)
	}
	// context system turn + two history turns + current message
	if len(req.Messages) != 4 {
		t.Fatalf("message count = %d: %+v", len(req.Messages), req.Messages)
	}
	if req.Messages[0].Role != ai.RoleSystem || !strings.Contains(req.Messages[0].Content, "Berlin roastery") {
		t.Fatalf("business context not forwarded: %+v", req.Messages[0])
	}
	if req.Messages[2].Role != ai.RoleAssistant {
		t.Fatalf("assistant turn role = %q", req.Messages[2].Role)
	}
	if req.Messages[3].Content != "How do I apply that?" {
		t.Fatalf("current message misplaced: %+v", req.Messages[3])
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	svc := &GenerateService{Chain: &fakeChain{}, Store: NewNoopStore()}
	if _, err := svc.Chat(context.Background(), "", "   ", nil, ""); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestOperationTemperatures(t *testing.T) {
	chain := &fakeChain{out: "x", provider: "groq"}
	svc := &GenerateService{Chain: chain, Store: NewNoopStore()}
	ctx := context.Background()

	_, _ = svc.MarketingContent(ctx, "", "Emberline", "roastery desc", "post", "", "", "", "")
	_, _ = svc.Sentiment(ctx, "", "long enough text", "")
	_, _ = svc.Palette(ctx, "", "Emberline", "", "", "", "", "")
	_, _ = svc.LogoConcepts(ctx, "", "Emberline", "", "", "", "", "")

	want := []float64{0.7, 0.3, 0.6, 0.8}
	if len(chain.reqs) != len(want) {
		t.Fatalf("call count = %d", len(chain.reqs))
	}
	for i, w := range want {
		if chain.reqs[i].Temperature != w {
			t.Fatalf("call %d temperature = %v, want %v", i, chain.reqs[i].Temperature, w)
		}
	}
}

func TestLabelFromInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"specialty coffee for the urban market", "Specialty Coffee Urban Market"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
		{"THE AND OR", ""},
	}
	for _, tc := range cases {
		if got := LabelFromInput(tc.in); got != tc.want {
			t.Fatalf("LabelFromInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := strings.Repeat("branding ", 30)
	if got := LabelFromInput(long); len([]rune(got)) > 60 {
		t.Fatalf("label not bounded: %d runes", len([]rune(got)))
	}
}
