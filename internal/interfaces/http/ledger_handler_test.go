package http_test

import (
	"archive/zip"
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/jhoicas/bulkledger-api/internal/application/replay"
	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/internal/infrastructure/archive"
	"github.com/jhoicas/bulkledger-api/internal/infrastructure/excel"
	apphttp "github.com/jhoicas/bulkledger-api/internal/interfaces/http"
	"github.com/jhoicas/bulkledger-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: aplicación completa (usecases reales sobre excelize) y un
// libro mínimo con hoja 메인 y hoja LOG con una marca de agua sembrada.
// ──────────────────────────────────────────────────────────────────────────────

func buildLedgerApp() *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: 32 << 20})
	opener := excel.NewOpener()
	apphttp.Router(app, apphttp.RouterDeps{
		ReplayUC:  replay.NewReplayUseCase(opener),
		ExtractUC: extract.NewExtractUseCase(opener, excel.NewRenderer(), archive.NewZipBundler()),
		Log:       zerolog.Nop(),
		Metrics:   metrics.New(),
	})
	return app
}

func ledgerBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), ledger.SheetMain))

	require.NoError(t, f.SetCellValue(ledger.SheetMain, "A1", "벌크 관리대장"))
	for cell, v := range map[string]string{
		"B2": "품목코드", "C2": "품명", "D2": "로트번호", "E2": "제품라인",
		"F2": "상태", "G2": "제조일자", "W2": "전체통수", "X2": "1번",
	} {
		require.NoError(t, f.SetCellValue(ledger.SheetMain, cell, v))
	}

	// fila 3: lote existente con la ranura 1 ocupada
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "B3", "A100"))
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "C3", "제품A"))
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "D3", "LOT001"))
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "E3", "1라인"))
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "X3", 100))
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "Y3", "4층"))
	require.NoError(t, f.SetCellValue(ledger.SheetMain, "Z3", 1))

	_, err := f.NewSheet(ledger.SheetLog)
	require.NoError(t, err)
	for i, h := range []string{
		"시간", "ID", "품번", "품명", "로트번호", "통번호",
		"변경 전 용량", "변경 후 용량", "변화량", "변경 전 위치", "변경 후 위치",
	} {
		cell, convErr := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, convErr)
		require.NoError(t, f.SetCellValue(ledger.SheetLog, cell, h))
	}
	require.NoError(t, f.SetCellValue(ledger.SheetLog, "A2",
		time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(ledger.SheetLog, "B2", "u1"))
	require.NoError(t, f.SetCellValue(ledger.SheetLog, "C2", "A100"))
	require.NoError(t, f.SetCellValue(ledger.SheetLog, "E2", "LOT001"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return buf.Bytes()
}

const moveLogHeader = "시간,ID,품번,품명,로트번호,통번호,변경 전 용량,변경 후 용량,변화량,변경 전 위치,변경 후 위치"

const drumsHeader = "품목코드,품명,로트번호,제품라인,제조일자,상태,통번호,통용량,현재위치"

func validMoveLog() []byte {
	return []byte(moveLogHeader + "\n2024-05-02 10:00:00,u9,A100,제품A,LOT001,1,100,80,-20,4층,3층\n")
}

func validDrums() []byte {
	return []byte(drumsHeader + "\nA100,제품A,LOT001,1라인,2024-04-01,생산 완료,1,100,4층\n")
}

type filePart struct {
	field, name string
	data        []byte
}

func postLedger(t *testing.T, app *fiber.App, path string, parts []filePart) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.name)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/ledger/replay
// ──────────────────────────────────────────────────────────────────────────────

func TestReplay_CorridaCompleta(t *testing.T) {
	app := buildLedgerApp()
	resp := postLedger(t, app, "/api/ledger/replay", []filePart{
		{"ledger", "벌크 관리대장.xlsm", ledgerBytes(t)},
		{"movelog", "bulk_move_log.csv", validMoveLog()},
		{"drums", "bulk_drums_extended.csv", validDrums()},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Applied-Count"))
	assert.NotEmpty(t, resp.Header.Get("X-Run-ID"))
	assert.Empty(t, resp.Header.Get("X-Warning-Count"))
	assert.Equal(t, "application/vnd.ms-excel", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename*=UTF-8''`+url.PathEscape("벌크 관리대장.xlsm"),
		resp.Header.Get("Content-Disposition"), "el nombre original viaja escapado")

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()

	x3, err := wb.GetCellValue(ledger.SheetMain, "X3")
	require.NoError(t, err)
	assert.Equal(t, "80", x3, "la cantidad de la ranura 1 quedó actualizada")
	y3, err := wb.GetCellValue(ledger.SheetMain, "Y3")
	require.NoError(t, err)
	assert.Equal(t, "3층", y3)

	logRows, err := wb.GetRows(ledger.SheetLog)
	require.NoError(t, err)
	require.Len(t, logRows, 3, "el registro aplicado quedó en LOG")
	assert.Equal(t, "u9", logRows[2][1])
}

func TestReplay_ArchivoFaltante(t *testing.T) {
	app := buildLedgerApp()
	resp := postLedger(t, app, "/api/ledger/replay", []filePart{
		{"ledger", "libro.xlsm", ledgerBytes(t)},
		{"drums", "bulk_drums_extended.csv", validDrums()},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Contains(t, string(body), "movelog")
}

func TestReplay_LibroInvalido(t *testing.T) {
	app := buildLedgerApp()
	resp := postLedger(t, app, "/api/ledger/replay", []filePart{
		{"ledger", "libro.xlsm", []byte("esto no es un xlsx")},
		{"movelog", "bulk_move_log.csv", validMoveLog()},
		{"drums", "bulk_drums_extended.csv", validDrums()},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_WORKBOOK")
}

func TestReplay_CSVIlegible(t *testing.T) {
	app := buildLedgerApp()
	resp := postLedger(t, app, "/api/ledger/replay", []filePart{
		{"ledger", "libro.xlsm", ledgerBytes(t)},
		{"movelog", "bulk_move_log.csv", validMoveLog()},
		{"drums", "bulk_drums_extended.csv", nil},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Contains(t, string(body), "bulk_drums_extended.csv")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/ledger/extract
// ──────────────────────────────────────────────────────────────────────────────

func TestExtract_DescargaZip(t *testing.T) {
	app := buildLedgerApp()
	resp := postLedger(t, app, "/api/ledger/extract", []filePart{
		{"ledger", "벌크 관리대장.xlsm", ledgerBytes(t)},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename*=UTF-8''bulk_bundle_export.zip`,
		resp.Header.Get("Content-Disposition"))
	assert.NotEmpty(t, resp.Header.Get("X-Run-ID"))

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	require.Len(t, zr.File, 2, "sin hojas de reporte solo viajan los dos CSV")
	assert.Equal(t, "bulk_drums_extended.csv", zr.File[0].Name)
	assert.Equal(t, "bulk_move_log.csv", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	drums, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(drums), "A100")
	assert.Contains(t, string(drums), "4층 보관", "la ubicación compuesta llega al CSV")

	rc2, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc2.Close()
	moveLog, err := io.ReadAll(rc2)
	require.NoError(t, err)
	assert.Contains(t, string(moveLog), "2024-05-01 10:30:00", "la marca de tiempo sale normalizada")
}

func TestExtract_SinArchivo(t *testing.T) {
	app := buildLedgerApp()
	resp := postLedger(t, app, "/api/ledger/extract", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Contains(t, string(body), "ledger")
}
