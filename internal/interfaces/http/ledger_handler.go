package http

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/bulkledger-api/internal/application/dto"
	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/jhoicas/bulkledger-api/internal/application/replay"
	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/jhoicas/bulkledger-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// LedgerHandler maneja las corridas sobre el libro de gestión de bulk.
type LedgerHandler struct {
	replayUC  *replay.ReplayUseCase
	extractUC *extract.ExtractUseCase
	log       zerolog.Logger
	metrics   *metrics.Metrics
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(replayUC *replay.ReplayUseCase, extractUC *extract.ExtractUseCase, log zerolog.Logger, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{replayUC: replayUC, extractUC: extractUC, log: log, metrics: m}
}

// Replay godoc
// @Summary      Reproducir el CSV de movimientos sobre el libro
// @Description  Aplica a las hojas 메인/LOG los registros de bulk_move_log.csv
//
//	posteriores a la marca de agua y devuelve el libro actualizado.
//
// @Tags         ledger
// @Accept       mpfd
// @Produce      application/vnd.ms-excel
// @Param        ledger   formData  file  true  "벌크 관리대장 (.xlsm/.xlsx)"
// @Param        movelog  formData  file  true  "bulk_move_log.csv"
// @Param        drums    formData  file  true  "bulk_drums_extended.csv"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/replay [post]
func (h *LedgerHandler) Replay(c *fiber.Ctx) error {
	runID := uuid.NewString()
	start := time.Now()
	log := h.log.With().Str("run_id", runID).Str("operation", "replay").Logger()

	workbook, filename, err := formFile(c, "ledger")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	movelog, _, err := formFile(c, "movelog")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	drums, _, err := formFile(c, "drums")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	res, err := h.replayUC.Replay(c.Context(), replay.ReplayInputDTO{
		Workbook: workbook,
		MoveLog:  movelog,
		DrumMeta: drums,
	})
	h.metrics.ObserveRun("replay", err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Msg("corrida de reproducción fallida")
		return mapDomainError(c, err)
	}
	h.metrics.AddApplied(res.Applied)

	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	log.Info().
		Int("applied", res.Applied).
		Int("warnings", len(res.Warnings)).
		Dur("duration", time.Since(start)).
		Msg("corrida de reproducción completada")

	c.Set("X-Run-ID", runID)
	c.Set("X-Applied-Count", strconv.Itoa(res.Applied))
	if len(res.Warnings) > 0 {
		c.Set("X-Warning-Count", strconv.Itoa(len(res.Warnings)))
	}
	setAttachment(c, filename)
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	return c.Send(res.Workbook)
}

// Extract godoc
// @Summary      Exportar el libro como paquete ZIP
// @Description  Deriva bulk_drums_extended.csv desde la hoja 메인, exporta las
//
//	hojas de reporte existentes y re-exporta la hoja LOG, todo en
//	un único ZIP.
//
// @Tags         ledger
// @Accept       mpfd
// @Produce      application/zip
// @Param        ledger  formData  file  true  "벌크 관리대장 (.xlsm/.xlsx)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/extract [post]
func (h *LedgerHandler) Extract(c *fiber.Ctx) error {
	runID := uuid.NewString()
	start := time.Now()
	log := h.log.With().Str("run_id", runID).Str("operation", "extract").Logger()

	workbook, _, err := formFile(c, "ledger")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}

	res, err := h.extractUC.Extract(c.Context(), extract.ExtractInputDTO{Workbook: workbook})
	h.metrics.ObserveRun("extract", err, time.Since(start))
	if err != nil {
		log.Error().Err(err).Msg("extracción fallida")
		return mapDomainError(c, err)
	}

	log.Info().
		Strs("entries", res.Entries).
		Dur("duration", time.Since(start)).
		Msg("extracción completada")

	c.Set("X-Run-ID", runID)
	setAttachment(c, "bulk_bundle_export.zip")
	c.Set(fiber.HeaderContentType, "application/zip")
	return c.Send(res.Bundle)
}

// formFile lee completo un archivo del formulario multipart.
func formFile(c *fiber.Ctx, field string) (data []byte, filename string, err error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("falta el archivo '%s' en el formulario", field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("no se puede abrir el archivo '%s'", field)
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("no se puede leer el archivo '%s'", field)
	}
	return data, fh.Filename, nil
}

// setAttachment fija Content-Disposition en forma RFC 5987; el hangul del
// nombre viaja percent-escapado, nunca crudo en la cabecera.
func setAttachment(c *fiber.Ctx, filename string) {
	if filename == "" {
		filename = "download"
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename*=UTF-8''`+url.PathEscape(filename))
}

// mapDomainError traduce errores de dominio a la respuesta HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnreadableCSV),
		errors.Is(err, domain.ErrMissingColumn):
		return badRequest(c, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrWorkbookInvalid),
		errors.Is(err, domain.ErrSheetNotFound):
		return badRequest(c, "INVALID_WORKBOOK", err.Error())
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
