package templates

import (
	"strconv"
	"strings"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

const (
	dateLayoutISO   = "2006-01-02"
	dateLayoutLocal = "02/01/2006"

	valueNotAvailable = "N/A"
)

// TemplateInfos carries the values available for placeholder substitution.
type TemplateInfos struct {
	Project         types.Project
	DeadlineDays    int
	FinalReportDate time.Time
	HasDeadline     bool
}

// ResolvePlaceholders substitutes the supported placeholder tokens in a subject
// or body template. Unrecognized tokens are left verbatim in the output.
func ResolvePlaceholders(text string, infos TemplateInfos) string {
	finalReportDate := valueNotAvailable
	if infos.HasDeadline {
		finalReportDate = infos.FinalReportDate.Format(dateLayoutISO)
	}

	deadlineDays := strconv.Itoa(infos.DeadlineDays)

	replacer := strings.NewReplacer(
		"{nombreCoordinador}", infos.Project.CoordinatorName,
		"{nombreProyecto}", infos.Project.Name,
		"{diasPlazo}", deadlineDays,
		"{diasRestantes}", deadlineDays,
		"{fechaInformeFinal}", finalReportDate,
		"{fechaInicio}", formatLocalDate(infos.Project.StartDate),
		"{fechaFin}", formatLocalDate(infos.Project.EndDate),
	)
	return replacer.Replace(text)
}

func formatLocalDate(d *time.Time) string {
	if d == nil {
		return valueNotAvailable
	}
	return d.Format(dateLayoutLocal)
}
