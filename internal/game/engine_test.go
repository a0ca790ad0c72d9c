package game

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/words"
)

// countingChecker wraps a Checker and records every lookup.
type countingChecker struct {
	inner dictionary.Checker
	calls []string
}

func (c *countingChecker) Check(ctx context.Context, word, lang string) (bool, error) {
	c.calls = append(c.calls, word)
	return c.inner.Check(ctx, word, lang)
}

type failingChecker struct{}

func (failingChecker) Check(context.Context, string, string) (bool, error) {
	return false, errors.New("disk on fire")
}

func newTestValidator(rules Rules) (*Validator, *countingChecker) {
	dict := &countingChecker{inner: dictionary.NewSet("en", []string{"silk", "worm", "milk", "is", "silkworm"})}
	return NewValidator(dict, "en", rules), dict
}

func silkworm() *Game {
	return &Game{ID: "g1", RootWord: "silkworm", UsedWords: []string{}}
}

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %v is not a *ValidationError", err)
	}
	return ve.Kind
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Silk":         "silk",
		"  WORM \n":    "worm",
		"\t milk\t":    "milk",
		"   ":          "",
		"":             "",
		"ÉCLAIR":       "éclair",
		"already done": "already done",
	}
	for in, want := range tests {
		got := Normalize(in)
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
		if again := Normalize(got); again != got {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, got, again)
		}
	}
}

func TestIsOriginal(t *testing.T) {
	used := []string{"silk", "worm"}
	for _, w := range used {
		if IsOriginal(w, used) {
			t.Errorf("IsOriginal(%q, %v) = true, want false", w, used)
		}
	}
	if !IsOriginal("milk", used) {
		t.Error("IsOriginal(milk) = false, want true")
	}
	if !IsOriginal("silk", nil) {
		t.Error("IsOriginal(silk, nil) = false, want true")
	}
}

func TestIsPossible(t *testing.T) {
	tests := []struct {
		word, root string
		want       bool
	}{
		{"silk", "silkworm", true},
		{"worm", "silkworm", true},
		{"silkworm", "silkworm", true},
		{"mrowklis", "silkworm", true},
		{"", "silkworm", true},
		{"silkx", "silkworm", false},
		{"zzz", "silkworm", false},
		{"sills", "silkworm", false}, // only one s and one l
		{"moo", "silkworm", false},   // only one o
		{"eeel", "elephant", false},  // only two e
		{"heel", "elephant", true},
		{"süß", "süßholz", true},
	}
	for _, tt := range tests {
		if got := IsPossible(tt.word, tt.root); got != tt.want {
			t.Errorf("IsPossible(%q, %q) = %v, want %v", tt.word, tt.root, got, tt.want)
		}
	}
}

func TestIsPossibleMatchesMultiset(t *testing.T) {
	root := "doorbell"
	candidates := []string{"door", "bell", "rob", "bole", "lobe", "roll", "doll", "dolls", "boor", "booed", "bored", "rebel"}
	for _, w := range candidates {
		counts := map[rune]int{}
		for _, r := range root {
			counts[r]++
		}
		want := true
		for _, r := range w {
			counts[r]--
			if counts[r] < 0 {
				want = false
			}
		}
		if got := IsPossible(w, root); got != want {
			t.Errorf("IsPossible(%q, %q) = %v, multiset says %v", w, root, got, want)
		}
	}
}

func TestSubmitWordAccepts(t *testing.T) {
	v, _ := newTestValidator(Rules{})
	g := silkworm()

	next, err := v.SubmitWord(context.Background(), g, "  Silk ")
	if err != nil {
		t.Fatalf("SubmitWord: %v", err)
	}
	want := &Game{ID: "g1", RootWord: "silkworm", UsedWords: []string{"silk"}, Score: 1}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(silkworm(), g); diff != "" {
		t.Errorf("input state mutated (-want +got):\n%s", diff)
	}

	next, err = v.SubmitWord(context.Background(), next, "worm")
	if err != nil {
		t.Fatalf("SubmitWord(worm): %v", err)
	}
	if diff := cmp.Diff([]string{"worm", "silk"}, next.UsedWords); diff != "" {
		t.Errorf("UsedWords order (-want +got):\n%s", diff)
	}
	if next.Score != len(next.UsedWords) {
		t.Errorf("Score = %d, want %d", next.Score, len(next.UsedWords))
	}
}

func TestSubmitWordRejections(t *testing.T) {
	played := &Game{ID: "g1", RootWord: "silkworm", UsedWords: []string{"silk"}, Score: 1}

	tests := []struct {
		name      string
		input     string
		rules     Rules
		wantKind  Kind
		wantCalls int
	}{
		{"already used", "silk", Rules{}, KindAlreadyUsed, 0},
		{"already used after normalizing", " SILK ", Rules{}, KindAlreadyUsed, 0},
		{"extra letter", "silkx", Rules{}, KindNotConstructible, 0},
		{"absent letters", "zzz", Rules{}, KindNotConstructible, 0},
		{"unknown word", "mows", Rules{}, KindNotARealWord, 1},
		{"too short", "is", Rules{MinLength: 3}, KindTooShort, 0},
		{"root word", "silkworm", Rules{RejectRoot: true}, KindRootWord, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, dict := newTestValidator(tt.rules)
			next, err := v.SubmitWord(context.Background(), played, tt.input)
			if err == nil {
				t.Fatalf("SubmitWord(%q): expected error", tt.input)
			}
			if got := kindOf(t, err); got != tt.wantKind {
				t.Errorf("kind = %q, want %q", got, tt.wantKind)
			}
			if next != played {
				t.Errorf("state replaced on rejection")
			}
			if diff := cmp.Diff([]string{"silk"}, played.UsedWords); diff != "" || played.Score != 1 {
				t.Errorf("state mutated: %v score=%d", played.UsedWords, played.Score)
			}
			if len(dict.calls) != tt.wantCalls {
				t.Errorf("dictionary calls = %v, want %d", dict.calls, tt.wantCalls)
			}
		})
	}
}

func TestSubmitWordMessages(t *testing.T) {
	v, _ := newTestValidator(Rules{})
	_, err := v.SubmitWord(context.Background(), silkworm(), "zzz")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	want := &ValidationError{
		Kind:    KindNotConstructible,
		Title:   "Word not possible",
		Message: "You can't spell that word from 'silkworm'!",
	}
	if diff := cmp.Diff(want, ve); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitWordDefaultRulesAllowShortAndRoot(t *testing.T) {
	v, _ := newTestValidator(Rules{})
	g, err := v.SubmitWord(context.Background(), silkworm(), "is")
	if err != nil {
		t.Fatalf("SubmitWord(is): %v", err)
	}
	g, err = v.SubmitWord(context.Background(), g, "silkworm")
	if err != nil {
		t.Fatalf("SubmitWord(silkworm): %v", err)
	}
	if g.Score != 2 {
		t.Errorf("Score = %d, want 2", g.Score)
	}
}

func TestSubmitWordIgnoresBlank(t *testing.T) {
	v, dict := newTestValidator(Rules{})
	g := silkworm()
	for _, in := range []string{"", "   ", "\t\n"} {
		next, err := v.SubmitWord(context.Background(), g, in)
		if err != nil {
			t.Errorf("SubmitWord(%q): unexpected error %v", in, err)
		}
		if next != g {
			t.Errorf("SubmitWord(%q): state replaced", in)
		}
	}
	if len(dict.calls) != 0 {
		t.Errorf("dictionary consulted for blank input: %v", dict.calls)
	}
}

func TestSubmitWordDictionaryFailure(t *testing.T) {
	v := NewValidator(failingChecker{}, "", Rules{})
	g := silkworm()
	next, err := v.SubmitWord(context.Background(), g, "silk")
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Errorf("backend failure reported as validation error: %v", ve)
	}
	if next != g {
		t.Error("state replaced on backend failure")
	}
}

func TestStartAndRestart(t *testing.T) {
	list := words.List{"gardener"}
	g := Start(list)
	if g.ID == "" {
		t.Error("Start: empty ID")
	}
	if g.RootWord != "gardener" {
		t.Errorf("Start root = %q, want gardener", g.RootWord)
	}
	if g.Score != 0 || len(g.UsedWords) != 0 {
		t.Errorf("Start: non-empty state %+v", g)
	}

	if got := Start(nil).RootWord; got != words.DefaultRoot {
		t.Errorf("Start(empty) root = %q, want %q", got, words.DefaultRoot)
	}

	played := &Game{ID: g.ID, RootWord: "gardener", UsedWords: []string{"garden", "red"}, Score: 2}
	r := Restart(played, words.List{"painting"})
	want := &Game{ID: g.ID, RootWord: "painting", UsedWords: []string{}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Restart mismatch (-want +got):\n%s", diff)
	}
	if played.Score != 2 {
		t.Error("Restart mutated its input")
	}
	if got := Restart(played, nil).RootWord; got != words.DefaultRoot {
		t.Errorf("Restart(empty) root = %q, want %q", got, words.DefaultRoot)
	}
}
