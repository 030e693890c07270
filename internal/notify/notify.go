// Package notify formats tasks into outbound deep links: a mailto link for
// the assignees' addresses and wa.me links for WhatsApp. Pure formatting over
// core data; nothing here sends anything.
package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mchevalier/stagetrack/internal/models"
)

// TaskEmailLink builds a mailto link addressed to every assignee with a
// French-language task summary body.
func TaskEmailLink(interns []models.Intern, task models.Task) string {
	emails := make([]string, 0, len(interns))
	for _, in := range interns {
		emails = append(emails, in.Email)
	}

	var b strings.Builder
	b.WriteString("Bonjour,\n\n")
	b.WriteString("Une nouvelle tâche vous a été assignée:\n\n")
	fmt.Fprintf(&b, "Titre: %s\n", task.Title)
	fmt.Fprintf(&b, "Description: %s\n", task.Description)
	fmt.Fprintf(&b, "Date d'échéance: %s\n\n", shortDate(task.DueDate))
	if task.IsGroup {
		b.WriteString("Cette tâche est à réaliser en groupe.\n\n")
	}
	b.WriteString("Cordialement,\nL'équipe de gestion")

	return "mailto:" + strings.Join(emails, ",") +
		"?subject=" + escape("Nouvelle tâche assignée: "+task.Title) +
		"&body=" + escape(b.String())
}

// TaskWhatsAppLink builds a wa.me link to the intern's guardian number with
// the task message prefilled.
func TaskWhatsAppLink(intern models.Intern, task models.Task) string {
	phone := strings.NewReplacer(" ", "", "+", "").Replace(intern.GuardianPhone)
	return "https://wa.me/" + phone + "?text=" + escape(whatsAppMessage(task, nil))
}

// GroupWhatsAppLink builds a wa.me link without a target number: the message
// carries the numbered team roster and the user picks the group chat.
func GroupWhatsAppLink(interns []models.Intern, task models.Task) string {
	return "https://wa.me/?text=" + escape(whatsAppMessage(task, interns))
}

func whatsAppMessage(task models.Task, team []models.Intern) string {
	var b strings.Builder
	b.WriteString("🎓 *Nouvelle tâche assignée*\n\n")
	fmt.Fprintf(&b, "📋 *%s*\n\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "📝 *Description :*\n%s\n\n", task.Description)
	}
	fmt.Fprintf(&b, "📅 *Échéance :* %s\n\n", longDate(task.DueDate))
	if len(team) > 0 {
		b.WriteString("👥 *Tâche de groupe*\nÉquipe :\n")
		for i, in := range team {
			fmt.Fprintf(&b, "%d. %s\n", i+1, in.FullName())
		}
		b.WriteString("\n")
	}
	b.WriteString("_Message automatique - Système de gestion des stagiaires_")
	return b.String()
}

// escape percent-encodes for use in a link query, with spaces as %20 rather
// than + so mail clients and WhatsApp render them.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frenchDays = [...]string{
	"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi",
}

// shortDate renders an ISO date as dd/mm/yyyy; unparseable input passes
// through untouched.
func shortDate(s string) string {
	t, ok := parse(s)
	if !ok {
		return s
	}
	return t.Format("02/01/2006")
}

// longDate renders an ISO date as "lundi 2 janvier 2006".
func longDate(s string) string {
	t, ok := parse(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%s %d %s %d",
		frenchDays[int(t.Weekday())], t.Day(), frenchMonths[int(t.Month())-1], t.Year())
}

func parse(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
