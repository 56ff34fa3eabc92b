package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/timeutil"
)

// DefaultWidth wraps comfort text when the terminal width is unknown.
const DefaultWidth = 72

// PrettyPrint renders haeuso's CLI output with color.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

var emotionColors = map[emotion.Emotion]*color.Color{
	emotion.Calm:    color.New(color.FgCyan),
	emotion.Happy:   color.New(color.FgHiYellow),
	emotion.Angry:   color.New(color.FgRed),
	emotion.Anxious: color.New(color.FgMagenta),
	emotion.Sad:     color.New(color.FgBlue),
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return DefaultWidth
	}
	return pp.Width
}

// Emotion renders em's symbol and label in its color.
func Emotion(em emotion.Emotion) string {
	g := em.Glyph()
	c, ok := emotionColors[em]
	if !ok {
		return g.Symbol + " " + g.Label
	}
	return c.Sprintf("%s %s", g.Symbol, g.Label)
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " - 1 entry")
	default:
		_, _ = c.Fprintf(pp.out(), " - %d entries\n", count)
	}
}

// Entries prints the active set as a table with the time each entry has
// left.
func (pp *PrettyPrint) Entries(now time.Time, entries []entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Recorded"), bold.Sprint("Emotion"), bold.Sprint("Expires in")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, e := range entries {
		row := []interface{}{
			e.CreatedAt.Local().Format("01-02 15:04"),
			Emotion(e.Emotion),
			faint.Sprint(timeutil.Remaining(e.Remaining(now))),
		}
		if pp.ShowID {
			row = append([]interface{}{id.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Comfort prints a reply wrapped to the terminal width. Crisis replies list
// their resources below the message.
func (pp *PrettyPrint) Comfort(resp comfort.Response) {
	msg := wordwrap.String(resp.Message, pp.width()-2)
	if resp.Category == comfort.CategoryCrisis {
		warn := color.New(color.FgHiRed, color.Bold)
		_, _ = warn.Fprintln(pp.out(), indent.String(msg, 2))
		pp.NewLine()
		for _, r := range resp.Resources {
			_, _ = fmt.Fprintf(pp.out(), "  • %s\n", r)
		}
		pp.NewLine()
		return
	}
	_, _ = color.New(color.Italic).Fprintln(pp.out(), indent.String(msg, 2))
	pp.NewLine()
}

// Recorded confirms a new entry.
func (pp *PrettyPrint) Recorded(e entry.Entry) {
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(pp.out(), "  %s recorded, fades in %s", Emotion(e.Emotion), timeutil.FormatWindow(entry.TTL))
	if pp.ShowID {
		_, _ = faint.Fprintf(pp.out(), " (%s)", e.ID)
	}
	pp.NewLine()
}

// Deleted confirms a deletion.
func (pp *PrettyPrint) Deleted(e entry.Entry) {
	_, _ = fmt.Fprintf(pp.out(), "Deleted %s entry from %s.\n", Emotion(e.Emotion), e.CreatedAt.Local().Format("15:04"))
}

// Insight prints the emotion distribution as bars followed by the comment.
func (pp *PrettyPrint) Insight(in comfort.Insight) {
	pp.TitleWithCount(fmt.Sprintf("Last %d days", in.PeriodDays), in.Total)

	most := 0
	for _, n := range in.Counts {
		if n > most {
			most = n
		}
	}
	const barWidth = 20
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, em := range emotion.All() {
		n := in.Counts[em]
		bar := ""
		if most > 0 {
			bar = strings.Repeat("█", n*barWidth/most)
		}
		c := emotionColors[em]
		tbl.AddRow(Emotion(em), c.Sprint(bar), n)
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if in.Dominant != comfort.NoDominant {
		_, _ = fmt.Fprintf(pp.out(), "  Mostly %s\n\n", Emotion(emotion.Emotion(in.Dominant)))
	}
	_, _ = color.New(color.Italic).Fprintln(pp.out(), indent.String(wordwrap.String(in.Comment, pp.width()-2), 2))
	pp.NewLine()
}
