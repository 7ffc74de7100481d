package ai

import (
	"context"
	"errors"
	"testing"
)

// fakeText is a scripted TextProvider counting its calls.
type fakeText struct {
	name  string
	out   string
	err   error
	calls int
}

func (f *fakeText) Name() string { return f.name }

func (f *fakeText) Complete(context.Context, TextRequest) (string, error) {
	f.calls++
	return f.out, f.err
}

func TestTextChain_PrefersSecondaryWhileHealthy(t *testing.T) {
	primary := &fakeText{name: "groq", out: "from primary"}
	secondary := &fakeText{name: "gemini", out: "from secondary"}
	c := NewTextChain(primary, secondary)

	out, provider, err := c.Complete(context.Background(), TextRequest{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "from secondary" || provider != "gemini" {
		t.Fatalf("expected secondary result, got %q from %q", out, provider)
	}
	if primary.calls != 0 {
		t.Fatalf("primary should not have been called, got %d calls", primary.calls)
	}
}

func TestTextChain_SecondaryFailureRetriesPrimaryOnceAndDemotes(t *testing.T) {
	primary := &fakeText{name: "groq", out: "fallback answer"}
	secondary := &fakeText{name: "gemini", err: errors.New("quota exceeded")}
	c := NewTextChain(primary, secondary)

	out, provider, err := c.Complete(context.Background(), TextRequest{})
	if err != nil {
		t.Fatalf("Complete after fallback: %v", err)
	}
	if out != "fallback answer" || provider != "groq" {
		t.Fatalf("expected primary fallback, got %q from %q", out, provider)
	}
	if primary.calls != 1 {
		t.Fatalf("primary must be retried exactly once, got %d calls", primary.calls)
	}
	if secondary.calls != 1 {
		t.Fatalf("secondary called %d times, want 1", secondary.calls)
	}

	// Demotion is sticky: the next request skips the secondary entirely.
	if _, provider, _ = c.Complete(context.Background(), TextRequest{}); provider != "groq" {
		t.Fatalf("demoted secondary was consulted again (provider %q)", provider)
	}
	if secondary.calls != 1 {
		t.Fatalf("secondary called after demotion: %d calls", secondary.calls)
	}
	if got := c.Active().Name(); got != "groq" {
		t.Fatalf("Active() = %q, want groq", got)
	}
}

func TestTextChain_NoSecondary_PrimaryFailureSurfaces(t *testing.T) {
	primary := &fakeText{name: "groq", err: errors.New("connection refused")}
	c := NewTextChain(primary, nil)

	_, _, err := c.Complete(context.Background(), TextRequest{})
	if err == nil {
		t.Fatal("expected error when primary fails and no secondary exists")
	}
	if !errors.Is(err, primary.err) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("primary called %d times, want 1 (no internal retry)", primary.calls)
	}
}

// fakeImage is a scripted ImageProvider.
type fakeImage struct {
	name      string
	available bool
	img       *Image
	err       error
	calls     int
}

func (f *fakeImage) Name() string    { return f.name }
func (f *fakeImage) Available() bool { return f.available }

func (f *fakeImage) Generate(context.Context, string) (*Image, error) {
	f.calls++
	return f.img, f.err
}

func TestImageChain_SkipsUnavailableAndFailing(t *testing.T) {
	missing := &fakeImage{name: "stability", available: false}
	broken := &fakeImage{name: "huggingface", available: true, err: errors.New("model loading")}
	working := &fakeImage{name: "keyless", available: true, img: &Image{URL: "https://img.example/x", Provider: "keyless"}}

	c := NewImageChain(missing, broken, working)
	img, err := c.Generate(context.Background(), "a logo")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Provider != "keyless" {
		t.Fatalf("expected keyless result, got %+v", img)
	}
	if missing.calls != 0 {
		t.Fatal("unavailable provider must not be called")
	}
	if broken.calls != 1 || working.calls != 1 {
		t.Fatalf("call counts: broken=%d working=%d", broken.calls, working.calls)
	}
}

func TestImageChain_FirstUsableWins(t *testing.T) {
	first := &fakeImage{name: "stability", available: true, img: &Image{URL: "data:image/png;base64,AA==", Provider: "stability"}}
	second := &fakeImage{name: "keyless", available: true, img: &Image{URL: "https://img.example/x", Provider: "keyless"}}

	c := NewImageChain(first, second)
	img, err := c.Generate(context.Background(), "a logo")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.Provider != "stability" {
		t.Fatalf("expected first provider to win, got %q", img.Provider)
	}
	if second.calls != 0 {
		t.Fatal("later providers must not be attempted after a success")
	}
}

func TestImageChain_AllExhausted(t *testing.T) {
	c := NewImageChain(&fakeImage{name: "stability", available: false})
	if _, err := c.Generate(context.Background(), "a logo"); !errors.Is(err, ErrNoImageProvider) {
		t.Fatalf("expected ErrNoImageProvider, got %v", err)
	}
}
