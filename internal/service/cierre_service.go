package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/apierror"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/model"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/posapi"
	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/worker"
)

// ── Day-close flow ────────────────────────────────────────────────────────────
// inactivo → confirmando → cerrando → cerrado, with a failed run falling back
// to confirmando so the user can retry without re-opening the confirmation.
// The machine is shared per process: while one run is in flight nobody can
// start another. Idempotency for the day itself is the API's job.

// EstadoCierre is the current position in the day-close flow.
type EstadoCierre int

const (
	CierreInactivo    EstadoCierre = iota // no flow in progress
	CierreConfirmando                     // confirmation dialog open
	CierreCerrando                        // request in flight — confirm disabled
	CierreCerrado                         // summary available, awaiting dismissal
)

// String returns a template-friendly state name.
func (e EstadoCierre) String() string {
	switch e {
	case CierreInactivo:
		return "inactivo"
	case CierreConfirmando:
		return "confirmando"
	case CierreCerrando:
		return "cerrando"
	case CierreCerrado:
		return "cerrado"
	default:
		return "desconocido"
	}
}

type CierreService interface {
	// Estado returns the flow position and, when cerrado, the summary.
	Estado() (EstadoCierre, *model.Cierre)
	// Confirmar opens the confirmation step (inactivo → confirmando).
	Confirmar()
	// Cancelar backs out of the confirmation (confirmando → inactivo).
	Cancelar()
	// Ejecutar runs the server-side aggregation. Success parks the flow in
	// cerrado; failure returns it to confirmando with the error.
	Ejecutar(ctx context.Context, sesionID string) (*model.Cierre, error)
	// Descartar dismisses the result view (cerrado → inactivo).
	Descartar()

	// Historial fetches the full settlement history.
	Historial(ctx context.Context, sesionID string) ([]model.Cierre, error)
	// RutaPDF is the path of the last generated summary PDF ("" when none).
	RutaPDF() string
}

type cierreService struct {
	api         *posapi.Client
	dispatcher  *worker.Dispatcher // nil when redis is not configured
	pdfPath     string
	reporteMail string

	mu       sync.Mutex
	estado   EstadoCierre
	resumen  *model.Cierre
	ultimoPD string
}

func NewCierreService(api *posapi.Client, dispatcher *worker.Dispatcher, pdfPath, reporteMail string) CierreService {
	return &cierreService{
		api:         api,
		dispatcher:  dispatcher,
		pdfPath:     pdfPath,
		reporteMail: reporteMail,
		estado:      CierreInactivo,
	}
}

func (s *cierreService) Estado() (EstadoCierre, *model.Cierre) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estado, s.resumen
}

func (s *cierreService) Confirmar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == CierreInactivo {
		s.estado = CierreConfirmando
	}
}

func (s *cierreService) Cancelar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == CierreConfirmando {
		s.estado = CierreInactivo
	}
}

func (s *cierreService) Ejecutar(ctx context.Context, sesionID string) (*model.Cierre, error) {
	s.mu.Lock()
	if s.estado != CierreConfirmando {
		defer s.mu.Unlock()
		if s.estado == CierreCerrando {
			return nil, apierror.NewValidacion("El cierre del dia ya esta en proceso.")
		}
		return nil, apierror.NewValidacion("Primero confirma el cierre del dia.")
	}
	s.estado = CierreCerrando
	s.mu.Unlock()

	cierre, err := s.api.CierreDia(ctx, sesionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Back to confirmando: the user retries without re-confirming.
		s.estado = CierreConfirmando
		return nil, err
	}
	if cierre == nil {
		s.estado = CierreConfirmando
		return nil, apierror.ErrRespuestaInvalida
	}

	s.estado = CierreCerrado
	s.resumen = cierre
	s.ultimoPD = ""

	if path, pdfErr := infra.GenerateCierrePDF(cierre, s.pdfPath); pdfErr != nil {
		// The summary view works without the PDF; don't fail the close.
		log.Error().Err(pdfErr).Msg("cierre: no se pudo generar el PDF")
	} else {
		s.ultimoPD = path
		s.encolarReporte(ctx, cierre, path)
	}

	log.Info().
		Int("pedidos_cerrados", cierre.PedidosCerrados).
		Str("total_ventas", cierre.TotalVentas.String()).
		Msg("cierre del dia registrado")
	return cierre, nil
}

func (s *cierreService) Descartar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.estado == CierreCerrado {
		s.estado = CierreInactivo
		s.resumen = nil
	}
}

func (s *cierreService) Historial(ctx context.Context, sesionID string) ([]model.Cierre, error) {
	return s.api.ListarCierres(ctx, sesionID)
}

func (s *cierreService) RutaPDF() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ultimoPD
}

// encolarReporte queues the report email when both redis and a recipient are
// configured. Must be called under s.mu.
func (s *cierreService) encolarReporte(ctx context.Context, cierre *model.Cierre, pdfPath string) {
	if s.dispatcher == nil || s.reporteMail == "" {
		return
	}
	payload := worker.ReporteJobPayload{
		ToEmail: s.reporteMail,
		Fecha:   cierre.Fecha.Format("02/01/2006"),
		PDFPath: pdfPath,
	}
	if err := s.dispatcher.EnqueueReporte(ctx, payload); err != nil {
		log.Error().Err(err).Msg("cierre: no se pudo encolar el reporte")
	}
}
