package aidraft

import (
	"fmt"
	"strings"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
)

// AbsenceWindow is one known unavailability the planner must respect:
// approved leave or reported sick leave.
type AbsenceWindow struct {
	EmployeeName string
	Kind         string // "Godišnji odmor" or "Bolovanje"
	Start        time.Time
	End          time.Time
}

// BuildPrompt assembles the planning prompt: the sector's shift formats,
// the roster in hierarchy order, absence windows, overlapping events and
// the caller's free-form constraints. The output contract pins the model
// to a markdown table with ISO date columns so the importer can parse it.
func BuildPrompt(
	sectorName string,
	weekStart time.Time,
	shifts []directory.ShiftTemplate,
	roster []directory.Employee,
	absences []AbsenceWindow,
	events []directory.Event,
	constraints string,
) string {
	var b strings.Builder

	shiftLabels := make([]string, 0, len(shifts))
	for _, s := range shifts {
		shiftLabels = append(shiftLabels, s.Label())
	}

	fmt.Fprintf(&b, "Ti si planer hotela. Kreiraj raspored za sektor '%s' za tjedan od %s.\n\n",
		sectorName, weekStart.Format("2006-01-02"))
	fmt.Fprintf(&b, "DOSTUPNE SMJENE (Koristi ISKLJUČIVO ove formate): %s, ili 'SLOBODAN'.\n\n",
		strings.Join(shiftLabels, ", "))

	b.WriteString("RADNICI (Poredani hijerarhijski):\n")
	if len(roster) == 0 {
		b.WriteString("Nema zaposlenika.\n")
	}
	for _, e := range roster {
		position := "N/A"
		if e.PositionName != nil {
			position = *e.PositionName
		}
		fmt.Fprintf(&b, "- %s (%s)\n", e.FullName(), position)
	}

	b.WriteString("\nODSUSTVA:\n")
	if len(absences) == 0 {
		b.WriteString("Nema zabilježenih odsustava.\n")
	}
	for _, a := range absences {
		fmt.Fprintf(&b, "- %s (%s): %s do %s\n",
			a.EmployeeName, a.Kind, a.Start.Format("2006-01-02"), a.End.Format("2006-01-02"))
	}

	b.WriteString("\nEVENTI:\n")
	if len(events) == 0 {
		b.WriteString("Nema evenata.\n")
	}
	for _, e := range events {
		fmt.Fprintf(&b, "EVENT: %s (%s)\n", e.Name, e.Start.Format("2006-01-02"))
	}

	if constraints == "" {
		constraints = "Nema."
	}
	fmt.Fprintf(&b, "\nUPUTE: %s\n", constraints)

	b.WriteString("\nFORMAT IZLAZA:\n")
	b.WriteString("Markdown tablica.\n")
	b.WriteString("Prvi stupac: 'Zaposlenik' (Format: \"Ime Prezime (Pozicija)\").\n")
	b.WriteString("Ostali stupci: Datumi u formatu 'YYYY-MM-DD' (npr. 2024-05-01).\n")
	b.WriteString("Ćelije: Samo vrijeme smjene (npr. 07:00-15:00) ili SLOBODAN.\n")

	return b.String()
}
