package templates

import (
	"testing"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

func TestResolvePlaceholders(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	infos := TemplateInfos{
		Project: types.Project{
			Name:            "Reforestación Campus",
			CoordinatorName: "Ana Quispe",
			StartDate:       &start,
			EndDate:         &end,
		},
		DeadlineDays:    3,
		FinalReportDate: time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC),
		HasDeadline:     true,
	}

	t.Run("all supported tokens", func(t *testing.T) {
		got := ResolvePlaceholders(
			"{nombreCoordinador}: {nombreProyecto} vence en {diasRestantes} días ({diasPlazo}), informe final {fechaInformeFinal}, del {fechaInicio} al {fechaFin}",
			infos,
		)
		want := "Ana Quispe: Reforestación Campus vence en 3 días (3), informe final 2024-07-12, del 01/03/2024 al 30/06/2024"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("unknown tokens stay verbatim", func(t *testing.T) {
		got := ResolvePlaceholders("hola {algoDesconocido} {nombreProyecto}", infos)
		want := "hola {algoDesconocido} Reforestación Campus"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("missing dates render as N/A", func(t *testing.T) {
		got := ResolvePlaceholders("{fechaInformeFinal} {fechaInicio} {fechaFin}", TemplateInfos{
			Project:      types.Project{},
			DeadlineDays: 0,
		})
		want := "N/A N/A N/A"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}
