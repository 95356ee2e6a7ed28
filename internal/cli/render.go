package cli

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/cabina/internal/checklist"
	"github.com/idilsaglam/cabina/internal/model"
	"github.com/idilsaglam/cabina/internal/ui"
)

const labelWidth = 60

// renderList builds the framed ls output.
func renderList(s *checklist.Store, opt Options) string {
	t := ui.Current()
	c, total := s.Counts()

	// Header + progress
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Cabina Checklist"),
		t.Success.Render(t.SymDone), c,
		t.Pending.Render("•"), total-c,
		t.Accent.Render("Total"), total,
	)
	status := "Progress"
	if s.AllDone() {
		status = t.Success.Render("All set!")
	}

	lines := []string{
		header,
		t.Muted.Render(ui.LongDate(opt.Now())),
		status + "  " + t.Muted.Render(ui.ProgressBar(s.Progress(), 28)),
		"",
	}
	if opt.Group {
		lines = append(lines, groupLines(s)...)
	} else {
		lines = append(lines, flatLines(s, s.Items())...)
	}
	lines = append(lines, "")
	if total == 0 {
		lines = append(lines, t.Muted.Render("Tip: add with `cabina add \"Cámara\"`"))
	} else {
		lines = append(lines, t.Muted.Render("Tip: check with `cabina check 1`"))
	}
	return ui.Panel(strings.Join(lines, "\n"))
}

// flatLines numbers items by their position in the whole template so the
// index always matches what check/edit/rm expect.
func flatLines(s *checklist.Store, items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("No items in the list.")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%2d.", s.Index(it.ID)+1)
		box := t.Muted.Render(t.BoxUnchecked)
		label := ui.Truncate(it.Label, labelWidth)
		if s.IsChecked(it.ID) {
			box = t.Success.Render(t.BoxChecked)
			label = t.Done.Render(label)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, label))
	}
	return out
}

func groupLines(s *checklist.Store) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range s.Items() {
		if s.IsChecked(it.ID) {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(s, pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(s, done)...)
	}
	return lines
}
