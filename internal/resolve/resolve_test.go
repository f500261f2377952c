package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"llamactl/internal/cache"
	"llamactl/internal/prompt"
	"llamactl/internal/ui"
	"llamactl/pkg/types"
)

// scriptedUI replays canned answers and records every prompt it was shown.
type scriptedUI struct {
	t *testing.T

	chooseAnswers []chooseAnswer
	inputAnswers  []inputAnswer

	chooseTitles  []string
	chooseOptions [][]string
	inputTitles   []string
}

type chooseAnswer struct {
	index int
	err   error
}

type inputAnswer struct {
	text string
	err  error
}

func (s *scriptedUI) Choose(title string, options []string, defaultIndex int) (int, error) {
	s.t.Helper()
	s.chooseTitles = append(s.chooseTitles, title)
	s.chooseOptions = append(s.chooseOptions, options)
	if len(s.chooseAnswers) == 0 {
		s.t.Fatalf("unexpected Choose(%q)", title)
	}
	a := s.chooseAnswers[0]
	s.chooseAnswers = s.chooseAnswers[1:]
	return a.index, a.err
}

func (s *scriptedUI) Input(title string) (string, error) {
	s.t.Helper()
	s.inputTitles = append(s.inputTitles, title)
	if len(s.inputAnswers) == 0 {
		s.t.Fatalf("unexpected Input(%q)", title)
	}
	a := s.inputAnswers[0]
	s.inputAnswers = s.inputAnswers[1:]
	return a.text, a.err
}

// recordingAcquirer echoes local paths and returns a fixed path for remote
// refs, recording every reference it sees.
type recordingAcquirer struct {
	refs       []types.ModelRef
	remotePath string
	err        error
}

func (a *recordingAcquirer) Acquire(ref types.ModelRef, dir string) (string, error) {
	a.refs = append(a.refs, ref)
	if a.err != nil {
		return "", a.err
	}
	if l, ok := ref.(types.LocalModel); ok {
		return l.Path, nil
	}
	return a.remotePath, nil
}

func newResolver(dir string, u ui.Chooser, acq *recordingAcquirer) *Resolver {
	return &Resolver{Dir: dir, UI: u, Acquirer: acq, Log: zerolog.Nop()}
}

func writeArtifacts(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(""), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
}

func TestExplicitModelSkipsDiscovery(t *testing.T) {
	// a nonexistent directory proves the cache is never scanned
	dir := filepath.Join(t.TempDir(), "never-created")
	u := &scriptedUI{t: t}
	acq := &recordingAcquirer{}
	r := newResolver(dir, u, acq)

	sel, err := r.Resolve(types.StartOptions{Model: "given.gguf", PromptTemplate: "chatml"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sel.ModelPath != "given.gguf" {
		t.Fatalf("model path = %q", sel.ModelPath)
	}
	if sel.Template != prompt.ChatML {
		t.Fatalf("template = %v", sel.Template)
	}
	if len(acq.refs) != 1 {
		t.Fatalf("expected one acquire call, got %d", len(acq.refs))
	}
	if _, ok := acq.refs[0].(types.LocalModel); !ok {
		t.Fatalf("explicit model must be acquired as local, got %T", acq.refs[0])
	}
	if len(u.chooseTitles) != 0 || len(u.inputTitles) != 0 {
		t.Fatal("no prompts expected when model and template are explicit")
	}
}

func TestEmptyCacheGoesStraightToURLPrompt(t *testing.T) {
	dir := t.TempDir()
	u := &scriptedUI{
		t:             t,
		inputAnswers:  []inputAnswer{{text: "https://host/m.gguf"}},
		chooseAnswers: []chooseAnswer{{index: 0}}, // template
	}
	acq := &recordingAcquirer{remotePath: filepath.Join(dir, "m.gguf")}
	r := newResolver(dir, u, acq)

	sel, err := r.Resolve(types.StartOptions{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sel.ModelPath != acq.remotePath {
		t.Fatalf("model path = %q", sel.ModelPath)
	}
	// the cached-model chooser must never appear for an empty cache
	for _, title := range u.chooseTitles {
		if title == "Select a cached model" {
			t.Fatal("cached-model chooser shown despite empty cache")
		}
	}
	remote, ok := acq.refs[0].(types.RemoteModel)
	if !ok {
		t.Fatalf("expected remote ref, got %T", acq.refs[0])
	}
	if remote.URL != "https://host/m.gguf" {
		t.Fatalf("url = %q", remote.URL)
	}
}

func TestCachedSelectionResolvesLocally(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, "a.gguf", "b.gguf")
	u := &scriptedUI{
		t: t,
		chooseAnswers: []chooseAnswer{
			{index: 1},                          // pick b.gguf
			{index: indexOf(t, "llama-2-chat")}, // template
		},
	}
	acq := &recordingAcquirer{}
	r := newResolver(dir, u, acq)

	sel, err := r.Resolve(types.StartOptions{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Base(sel.ModelPath) != "b.gguf" {
		t.Fatalf("model path = %q", sel.ModelPath)
	}
	if sel.Template != prompt.Llama2Chat {
		t.Fatalf("template = %v", sel.Template)
	}
	// options are the artifacts in listing order plus the sentinel at the end
	opts := u.chooseOptions[0]
	if len(opts) != 3 {
		t.Fatalf("expected 2 artifacts + sentinel, got %v", opts)
	}
	if opts[0] != "a.gguf" || opts[1] != "b.gguf" {
		t.Fatalf("unexpected option order: %v", opts)
	}
	if opts[2] != DefaultCatalogHint {
		t.Fatalf("sentinel missing or not last: %q", opts[2])
	}
}

func TestSentinelSelectionFallsThroughToURLPrompt(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, "a.gguf")
	u := &scriptedUI{
		t: t,
		chooseAnswers: []chooseAnswer{
			{index: 1}, // the sentinel (after 1 artifact)
			{index: 0}, // template
		},
		inputAnswers: []inputAnswer{{text: "https://host/other.gguf"}},
	}
	acq := &recordingAcquirer{remotePath: filepath.Join(dir, "other.gguf")}
	r := newResolver(dir, u, acq)

	sel, err := r.Resolve(types.StartOptions{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Base(sel.ModelPath) != "other.gguf" {
		t.Fatalf("model path = %q", sel.ModelPath)
	}
	if _, ok := acq.refs[0].(types.RemoteModel); !ok {
		t.Fatalf("expected remote acquisition, got %T", acq.refs[0])
	}
}

func TestModelChooserCancellationIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, "a.gguf")
	u := &scriptedUI{
		t:             t,
		chooseAnswers: []chooseAnswer{{err: ui.ErrCancelled}},
	}
	acq := &recordingAcquirer{}
	r := newResolver(dir, u, acq)

	_, err := r.Resolve(types.StartOptions{})
	if !IsModelSelectionCancelled(err) {
		t.Fatalf("expected model-selection-cancelled, got %v", err)
	}
	if len(acq.refs) != 0 {
		t.Fatal("no acquisition may happen after cancellation")
	}
}

func TestURLPromptCancellationIsFatal(t *testing.T) {
	dir := t.TempDir()
	u := &scriptedUI{
		t:            t,
		inputAnswers: []inputAnswer{{err: ui.ErrCancelled}},
	}
	acq := &recordingAcquirer{}
	r := newResolver(dir, u, acq)

	_, err := r.Resolve(types.StartOptions{})
	if !IsModelSelectionCancelled(err) {
		t.Fatalf("expected model-selection-cancelled, got %v", err)
	}
	if len(acq.refs) != 0 {
		t.Fatal("no acquisition may happen after cancellation")
	}
}

func TestTemplateChooserCancellationIsFatal(t *testing.T) {
	u := &scriptedUI{
		t:             t,
		chooseAnswers: []chooseAnswer{{err: ui.ErrCancelled}},
	}
	r := newResolver(t.TempDir(), u, &recordingAcquirer{})

	_, err := r.Resolve(types.StartOptions{Model: "given.gguf"})
	if !IsTemplateSelectionCancelled(err) {
		t.Fatalf("expected template-selection-cancelled, got %v", err)
	}
}

func TestTemplateChooserUsesFixedCatalogOrder(t *testing.T) {
	u := &scriptedUI{
		t:             t,
		chooseAnswers: []chooseAnswer{{index: indexOf(t, "deepseek-coder")}},
	}
	r := newResolver(t.TempDir(), u, &recordingAcquirer{})

	sel, err := r.Resolve(types.StartOptions{Model: "given.gguf"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sel.Template != prompt.DeepseekCoder {
		t.Fatalf("template = %v", sel.Template)
	}
	got := u.chooseOptions[0]
	want := prompt.Catalog()
	if len(got) != len(want) {
		t.Fatalf("chooser got %d options, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("option[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPreSpecifiedTemplateSkipsPrompt(t *testing.T) {
	u := &scriptedUI{t: t}
	r := newResolver(t.TempDir(), u, &recordingAcquirer{})

	sel, err := r.Resolve(types.StartOptions{Model: "given.gguf", PromptTemplate: "zephyr"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sel.Template != prompt.Zephyr {
		t.Fatalf("template = %v", sel.Template)
	}
	if len(u.chooseTitles) != 0 {
		t.Fatalf("template chooser shown despite pre-specified template: %v", u.chooseTitles)
	}
}

func TestUnreadableDirectoryFailsResolution(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	r := newResolver(dir, &scriptedUI{t: t}, &recordingAcquirer{})

	_, err := r.Resolve(types.StartOptions{})
	if !cache.IsDirectoryUnreadable(err) {
		t.Fatalf("expected directory-unreadable error, got %v", err)
	}
}

func TestCatalogHintOverride(t *testing.T) {
	dir := t.TempDir()
	writeArtifacts(t, dir, "a.gguf")
	u := &scriptedUI{
		t: t,
		chooseAnswers: []chooseAnswer{
			{index: 0},
			{index: 0},
		},
	}
	r := newResolver(dir, u, &recordingAcquirer{})
	r.CatalogHint = "Browse the company model registry"

	if _, err := r.Resolve(types.StartOptions{}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	opts := u.chooseOptions[0]
	if opts[len(opts)-1] != "Browse the company model registry" {
		t.Fatalf("sentinel not overridden: %q", opts[len(opts)-1])
	}
}

// indexOf finds a canonical id's position in the presentation catalog.
func indexOf(t *testing.T, id string) int {
	t.Helper()
	for i, s := range prompt.Catalog() {
		if s == id {
			return i
		}
	}
	t.Fatalf("id %q not in catalog", id)
	return -1
}
