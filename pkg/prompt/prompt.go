// Package prompt asks for the pieces of a reflection that were not given on
// the command line.
package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
)

// ErrNotInteractive is returned when a prompt would need a terminal.
var ErrNotInteractive = errors.New("prompt: stdin is not a terminal")

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Emotion asks the user to pick one of the five emotions.
func Emotion(in io.Reader, out io.Writer) (emotion.Emotion, error) {
	glyphs := make([]emotion.Glyph, 0, len(emotion.All()))
	for _, em := range emotion.All() {
		glyphs = append(glyphs, em.Glyph())
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Symbol }} {{ .Label | bold }} {{ .Emotion | cyan }}",
		Inactive: "   {{ .Symbol }} {{ .Label }} {{ .Emotion | faint }}",
		Selected: "{{ .Symbol }} {{ .Label | bold }}",
	}

	searcher := func(input string, index int) bool {
		g := glyphs[index]
		input = strings.ToLower(strings.TrimSpace(input))
		return strings.Contains(string(g.Emotion), input) || strings.Contains(g.Label, input)
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     "How are you feeling",
		Items:     glyphs,
		Templates: templates,
		Size:      len(glyphs),
		Searcher:  searcher,
		Stdin:     io.NopCloser(in),
		Stdout:    NopCloser(out),
	}

	i, _, err := sel.Run()
	if err != nil {
		return "", err
	}
	return glyphs[i].Emotion, nil
}

// Content asks for the note to reflect on. Blank and overlong answers are
// refused at the prompt.
func Content(in io.Reader, out io.Writer) (string, error) {
	validate := func(input string) error {
		_, err := comfort.Validate(comfort.Request{Content: input})
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	p := promptui.Prompt{
		Label:     "What happened",
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(in),
		Stdout:    NopCloser(out),
	}

	result, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
