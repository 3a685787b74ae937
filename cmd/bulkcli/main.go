// bulkcli aplica corridas del libro de gestión de bulk desde archivos locales,
// sin levantar el servidor HTTP.
//
// Uso:
//
//	bulkcli replay  -ledger 관리대장.xlsm -movelog bulk_move_log.csv -drums bulk_drums_extended.csv [-out salida.xlsm]
//	bulkcli extract -ledger 관리대장.xlsm [-out bulk_bundle_export.zip]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/jhoicas/bulkledger-api/internal/application/replay"
	"github.com/jhoicas/bulkledger-api/internal/infrastructure/archive"
	"github.com/jhoicas/bulkledger-api/internal/infrastructure/excel"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "replay":
		err = runReplay(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: bulkcli replay -ledger LIBRO -movelog CSV -drums CSV [-out SALIDA]")
	fmt.Fprintln(os.Stderr, "     bulkcli extract -ledger LIBRO [-out SALIDA]")
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	ledgerPath := fs.String("ledger", "", "libro 벌크 관리대장 (.xlsm/.xlsx)")
	movelogPath := fs.String("movelog", "", "bulk_move_log.csv")
	drumsPath := fs.String("drums", "", "bulk_drums_extended.csv")
	outPath := fs.String("out", "", "ruta de salida (por defecto sobrescribe el libro)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ledgerPath == "" || *movelogPath == "" || *drumsPath == "" {
		fs.Usage()
		return fmt.Errorf("faltan -ledger, -movelog o -drums")
	}

	workbook, err := os.ReadFile(*ledgerPath)
	if err != nil {
		return err
	}
	movelog, err := os.ReadFile(*movelogPath)
	if err != nil {
		return err
	}
	drums, err := os.ReadFile(*drumsPath)
	if err != nil {
		return err
	}

	uc := replay.NewReplayUseCase(excel.NewOpener())
	res, err := uc.Replay(context.Background(), replay.ReplayInputDTO{
		Workbook: workbook,
		MoveLog:  movelog,
		DrumMeta: drums,
	})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "aviso:", w)
	}

	dst := *outPath
	if dst == "" {
		dst = *ledgerPath
	}
	if err := os.WriteFile(dst, res.Workbook, 0o644); err != nil {
		return err
	}
	fmt.Printf("Aplicados %d registros en %s\n", res.Applied, dst)
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	ledgerPath := fs.String("ledger", "", "libro 벌크 관리대장 (.xlsm/.xlsx)")
	outPath := fs.String("out", "bulk_bundle_export.zip", "ruta del ZIP de salida")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ledgerPath == "" {
		fs.Usage()
		return fmt.Errorf("falta -ledger")
	}

	workbook, err := os.ReadFile(*ledgerPath)
	if err != nil {
		return err
	}

	uc := extract.NewExtractUseCase(excel.NewOpener(), excel.NewRenderer(), archive.NewZipBundler())
	res, err := uc.Extract(context.Background(), extract.ExtractInputDTO{Workbook: workbook})
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, res.Bundle, 0o644); err != nil {
		return err
	}
	fmt.Printf("Generado %s: %d entradas\n", *outPath, len(res.Entries))
	return nil
}
