package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mchevalier/stagetrack/internal/models"
)

func TestTaskEmailLink(t *testing.T) {
	interns := []models.Intern{
		{FirstName: "Marie", LastName: "Dupont", Email: "marie@example.fr"},
		{FirstName: "Luc", LastName: "Martin", Email: "luc@example.fr"},
	}
	task := models.Task{
		Title:       "Rapport de stage",
		Description: "Rédiger le rapport final",
		DueDate:     "2026-06-30",
		IsGroup:     true,
	}

	link := TaskEmailLink(interns, task)
	assert.True(t, strings.HasPrefix(link, "mailto:marie@example.fr,luc@example.fr?subject="), link)
	assert.Contains(t, link, "&body=")
	// Spaces are encoded as %20, never +.
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")
	// The short date format is dd/mm/yyyy.
	assert.Contains(t, link, escape("30/06/2026"))
	assert.Contains(t, link, escape("Cette tâche est à réaliser en groupe."))
}

func TestTaskEmailLink_SoloOmitsGroupLine(t *testing.T) {
	interns := []models.Intern{{Email: "marie@example.fr"}}
	task := models.Task{Title: "Veille", DueDate: "2026-03-15"}

	link := TaskEmailLink(interns, task)
	assert.NotContains(t, link, escape("en groupe"))
}

func TestTaskWhatsAppLink(t *testing.T) {
	intern := models.Intern{GuardianPhone: "+33 6 12 34 56 78"}
	task := models.Task{Title: "Rapport", DueDate: "2026-03-02"}

	link := TaskWhatsAppLink(intern, task)
	// Spaces and the leading + are stripped from the number.
	assert.True(t, strings.HasPrefix(link, "https://wa.me/33612345678?text="), link)
	// March 2nd 2026 is a Monday.
	assert.Contains(t, link, escape("lundi 2 mars 2026"))
}

func TestGroupWhatsAppLink(t *testing.T) {
	interns := []models.Intern{
		{FirstName: "Marie", LastName: "Dupont"},
		{FirstName: "Luc", LastName: "Martin"},
	}
	task := models.Task{Title: "Projet d'équipe", DueDate: "2026-06-30", IsGroup: true}

	link := GroupWhatsAppLink(interns, task)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="), link)
	assert.Contains(t, link, escape("1. Marie Dupont"))
	assert.Contains(t, link, escape("2. Luc Martin"))
}

func TestDates_UnparseableInputPassesThrough(t *testing.T) {
	assert.Equal(t, "bientôt", shortDate("bientôt"))
	assert.Equal(t, "bientôt", longDate("bientôt"))
}
