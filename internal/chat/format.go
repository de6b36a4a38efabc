package chat

import (
	"fmt"
	"io"
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	card   lipgloss.Style
	name   lipgloss.Style
	label  lipgloss.Style
	found  lipgloss.Style
	errMsg lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		name:   r.NewStyle().Bold(true),
		label:  r.NewStyle().Foreground(lipgloss.Color("245")),
		found:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		errMsg: r.NewStyle().Foreground(lipgloss.Color("196")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// personCard renders one match. Blank attributes are left out.
func (s styles) personCard(p common.Person) string {
	lines := []string{s.name.Render("👤 " + p.Name)}

	field := func(icon, label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, fmt.Sprintf("   %s %s %s", icon, s.label.Render(label+":"), value))
	}
	field("🏢", "Company", p.Company)
	field("🎓", "University", p.University)
	field("🌍", "Country", p.Country)
	field("💼", "Industry", p.Industry)
	field("🗣️", "Languages", strings.Join(p.Languages, ", "))

	return s.card.Render(strings.Join(lines, "\n"))
}

func (s styles) result(res common.QueryResult) string {
	if len(res.Matches) == 0 {
		return noMatchText
	}

	noun := "matches"
	if len(res.Matches) == 1 {
		noun = "match"
	}

	var b strings.Builder
	b.WriteString(s.found.Render(fmt.Sprintf("✨ Found %d %s:", len(res.Matches), noun)))
	for _, p := range res.Matches {
		b.WriteString("\n")
		b.WriteString(s.personCard(p))
	}
	return b.String()
}

func (s styles) conditions(conds []common.Condition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = fmt.Sprintf("(%s, %s, %s)", c.Subject, c.Relation, c.Object)
	}
	return s.muted.Render("🧩 Conditions: " + strings.Join(parts, " AND "))
}
