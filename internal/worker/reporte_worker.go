package worker

// reporte_worker.go
// Processes settlement-report jobs from QueueReporte: emails the day-close
// summary PDF to the configured recipient.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
)

// ReporteJobPayload is the job envelope sent to QueueReporte.
type ReporteJobPayload struct {
	ToEmail string `json:"to_email"`
	Fecha   string `json:"fecha"`
	PDFPath string `json:"pdf_path"`
}

// ReporteWorker emails day-close summaries via SMTP.
type ReporteWorker struct {
	mailer *infra.Mailer
}

func NewReporteWorker(mailer *infra.Mailer) *ReporteWorker {
	return &ReporteWorker{mailer: mailer}
}

// Process sends the report email with the summary PDF attached.
func (w *ReporteWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("reporte_worker: empty to_email — skipping")
		return
	}
	if !w.mailer.Habilitado() {
		log.Debug().Msg("reporte_worker: SMTP no configurado — skipping")
		return
	}

	subject := fmt.Sprintf("Cierre del dia %s", payload.Fecha)
	body := fmt.Sprintf("Se adjunta el resumen del cierre del dia %s.", payload.Fecha)
	if err := w.mailer.SendReporte(payload.ToEmail, subject, body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("reporte_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("reporte_worker: reporte enviado")
}
