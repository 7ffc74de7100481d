package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/FAde16-lang/BrandCraft/internal/ai"
)

type fakeGenerator struct {
	img     *ai.Image
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (*ai.Image, error) {
	f.prompts = append(f.prompts, prompt)
	return f.img, f.err
}

type fakeEditor struct {
	img      *ai.Image
	err      error
	prompt   string
	strength float64
	image    []byte
}

func (f *fakeEditor) Edit(_ context.Context, imagePNG []byte, prompt string, strength float64) (*ai.Image, error) {
	f.image = imagePNG
	f.prompt = prompt
	f.strength = strength
	return f.img, f.err
}

func TestGenerateImage_ComposesPromptFromBrand(t *testing.T) {
	gen := &fakeGenerator{img: &ai.Image{URL: "https://img/x", Provider: "Pollinations"}}
	svc := &LogoService{Generator: gen, Store: NewNoopStore()}

	img, err := svc.GenerateImage(context.Background(), "sub-1", "Emberline", "specialty coffee", "minimal", "")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if img.Provider != "Pollinations" {
		t.Fatalf("provider = %q", img.Provider)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "minimal logo for Emberline") {
		t.Fatalf("composed prompt: %+v", gen.prompts)
	}
}

func TestGenerateImage_CustomPromptWins(t *testing.T) {
	gen := &fakeGenerator{img: &ai.Image{URL: "u", Provider: "p"}}
	svc := &LogoService{Generator: gen, Store: NewNoopStore()}

	if _, err := svc.GenerateImage(context.Background(), "", "", "", "", "terracotta flame mark"); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if gen.prompts[0] != "terracotta flame mark" {
		t.Fatalf("custom prompt not used verbatim: %q", gen.prompts[0])
	}
}

func TestGenerateImage_NoBrandNoPrompt(t *testing.T) {
	svc := &LogoService{Generator: &fakeGenerator{}, Store: NewNoopStore()}
	if _, err := svc.GenerateImage(context.Background(), "", "", "coffee", "minimal", ""); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestEditLogo_DecodesAndForwards(t *testing.T) {
	editor := &fakeEditor{img: &ai.Image{URL: "data:image/png;base64,AA==", Provider: "Stability AI SDXL"}}
	svc := &LogoService{Generator: &fakeGenerator{}, Editor: editor, Store: NewNoopStore()}

	raw := []byte("png-bytes")
	payload := base64.StdEncoding.EncodeToString(raw)

	img, err := svc.EditLogo(context.Background(), "sub-1", payload, "make it angular", 0.7)
	if err != nil {
		t.Fatalf("EditLogo: %v", err)
	}
	if img.Provider != "Stability AI SDXL" {
		t.Fatalf("provider = %q", img.Provider)
	}
	if string(editor.image) != "png-bytes" {
		t.Fatalf("decoded image bytes = %q", editor.image)
	}
	if editor.strength != 0.7 {
		t.Fatalf("strength forwarded as %v", editor.strength)
	}
	if !strings.Contains(editor.prompt, "make it angular") {
		t.Fatalf("instruction not framed: %q", editor.prompt)
	}
}

func TestEditLogo_AcceptsDataURL(t *testing.T) {
	editor := &fakeEditor{img: &ai.Image{URL: "u", Provider: "p"}}
	svc := &LogoService{Editor: editor, Store: NewNoopStore()}

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	if _, err := svc.EditLogo(context.Background(), "", payload, "tweak", 0.5); err != nil {
		t.Fatalf("EditLogo with data URL: %v", err)
	}
	if string(editor.image) != "x" {
		t.Fatalf("data URL prefix not stripped: %q", editor.image)
	}
}

func TestEditLogo_Validation(t *testing.T) {
	editor := &fakeEditor{img: &ai.Image{URL: "u", Provider: "p"}}
	valid := base64.StdEncoding.EncodeToString([]byte("x"))

	t.Run("no editor configured", func(t *testing.T) {
		svc := &LogoService{Store: NewNoopStore()}
		if _, err := svc.EditLogo(context.Background(), "", valid, "tweak", 0.5); !errors.Is(err, ErrEditorNotConfigured) {
			t.Fatalf("expected ErrEditorNotConfigured, got %v", err)
		}
	})

	t.Run("bad base64", func(t *testing.T) {
		svc := &LogoService{Editor: editor, Store: NewNoopStore()}
		if _, err := svc.EditLogo(context.Background(), "", "not-base64!!!", "tweak", 0.5); !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("expected ErrInvalidImage, got %v", err)
		}
	})

	t.Run("strength out of range", func(t *testing.T) {
		svc := &LogoService{Editor: editor, Store: NewNoopStore()}
		for _, s := range []float64{0, -0.1, 1.5} {
			if _, err := svc.EditLogo(context.Background(), "", valid, "tweak", s); !errors.Is(err, ErrInvalidStrength) {
				t.Fatalf("strength %v: expected ErrInvalidStrength, got %v", s, err)
			}
		}
	})

	t.Run("empty instruction", func(t *testing.T) {
		svc := &LogoService{Editor: editor, Store: NewNoopStore()}
		if _, err := svc.EditLogo(context.Background(), "", valid, "  ", 0.5); !errors.Is(err, ErrEmptyPrompt) {
			t.Fatalf("expected ErrEmptyPrompt, got %v", err)
		}
	})
}

func TestEditLogo_RecordsHistory(t *testing.T) {
	db := newServiceDB(t)
	editor := &fakeEditor{img: &ai.Image{URL: "u", Provider: "Stability AI SDXL"}}
	svc := &LogoService{Editor: editor, Store: &GormStore{DB: db}}

	valid := base64.StdEncoding.EncodeToString([]byte("x"))
	if _, err := svc.EditLogo(context.Background(), "sub-1", valid, "make it angular", 0.7); err != nil {
		t.Fatalf("EditLogo: %v", err)
	}
	recs, _ := (&GormStore{DB: db}).ListGenerations(context.Background(), "sub-1", 10)
	if len(recs) != 1 || recs[0].Operation != OpLogoEdit {
		t.Fatalf("history rows: %+v", recs)
	}
}
