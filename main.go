package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cugur1978/Get-Gene-Copies/config"
	"github.com/cugur1978/Get-Gene-Copies/internal/util"
	"github.com/cugur1978/Get-Gene-Copies/logger"
	mydb "github.com/cugur1978/Get-Gene-Copies/pkg/db"
	"github.com/cugur1978/Get-Gene-Copies/pkg/model"
	"github.com/cugur1978/Get-Gene-Copies/pkg/render"
	"github.com/cugur1978/Get-Gene-Copies/pkg/report"

	_ "modernc.org/sqlite"
)

const VERSION = "0.1.0"

func main() {

	var (
		inDir       = flag.String("in", "", "directory of genome annotation files (defaults to GENECOPIES_DATA)")
		xlsxPath    = flag.String("xlsx", "gene_counts.xlsx", "output spreadsheet")
		heatmapPath = flag.String("heatmap", "genome_heatmap.svg", "output clustered heatmap")
		barsPath    = flag.String("bars", "top_genes.svg", "output ranked gene chart")
		configPath  = flag.String("config", "", "optional YAML config file")
		dbPath      = flag.String("db", "", "optional sqlite export of the gene table")
		extFlag     = flag.String("ext", "", "annotation file extension to scan")
		topFlag     = flag.Int("top", 0, "number of genes on the ranked chart")
		logLevel    = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("get-gene-copies", VERSION)
		return
	}

	level, levelErr := logger.ParseLevel(*logLevel)
	if err := logger.InitLogger(level); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	if levelErr != nil {
		logger.Warn("Unknown log level, using info", zap.String("log-level", *logLevel))
	}

	// Try load env
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env found, using local environment")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("Failed to load config", zap.String("config", *configPath), zap.Error(err))
		}
		cfg = *loaded
	}
	levelFlagSet := false
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "ext":
			cfg.Scan.Extension = *extFlag
		case "top":
			cfg.Charts.TopN = *topFlag
		case "log-level":
			levelFlagSet = true
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// The -log-level flag wins over the config file.
	if !levelFlagSet {
		if lv, err := logger.ParseLevel(cfg.Logging.Level); err == nil && lv != level {
			if err := logger.InitLogger(lv); err != nil {
				panic(err)
			}
		}
	}

	dataDir := *inDir
	if dataDir == "" {
		dataDir = os.Getenv("GENECOPIES_DATA")
	}
	if dataDir == "" {
		logger.Warn("No local environment (GENECOPIES_DATA), using default value (./data)")
		dataDir = "./data"
	}

	runID := "run-" + uuid.New().String()
	logger.Info("Start:", zap.String("Version", VERSION), zap.String("run_id", runID))

	if !util.DirExists(dataDir) {
		logger.Fatal("Annotation directory does not exist", zap.String("dir", dataDir))
	}

	table, err := model.CollectDirectory(dataDir, cfg.Scan.Extension, cfg.Scan.RecordMarker)
	if err != nil {
		logger.Fatal("Failed to collect annotation files", zap.String("dir", dataDir), zap.Error(err))
	}

	// The spreadsheet is the primary artifact. Losing it aborts the run
	// before any chart is attempted.
	if err := report.WriteWorkbook(*xlsxPath, table); err != nil {
		logger.Fatal("Failed to write workbook", zap.String("xlsx", *xlsxPath), zap.Error(err))
	}
	logger.Info("Wrote workbook", zap.String("xlsx", *xlsxPath))

	if *dbPath != "" {
		exportSQLite(*dbPath, table)
	}

	failed := 0
	if err := render.RenderHeatmap(*heatmapPath, table, cfg.Charts.HeatmapWidth, cfg.Charts.HeatmapHeight); err != nil {
		logger.Error("Failed to render heatmap", zap.String("heatmap", *heatmapPath), zap.Error(err))
		failed++
	} else {
		logger.Info("Wrote heatmap", zap.String("heatmap", *heatmapPath))
	}

	stats := table.RankParalogs(cfg.Charts.TopN)
	if err := render.RenderTopGenes(*barsPath, stats, cfg.Charts.BarsWidth, cfg.Charts.BarsHeight); err != nil {
		logger.Error("Failed to render gene chart", zap.String("bars", *barsPath), zap.Error(err))
		failed++
	} else {
		logger.Info("Wrote gene chart", zap.String("bars", *barsPath))
	}

	if failed > 0 {
		logger.Error("Finished with failed charts", zap.Int("failed", failed))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Done", zap.String("run_id", runID))
}

// exportSQLite is best effort. A broken export is logged and the run keeps
// going, since the workbook already holds the same data.
func exportSQLite(path string, table *model.GeneTable) {
	if err := util.EnsureParentDir(path); err != nil {
		logger.Error("Failed to prepare sqlite export", zap.String("db", path), zap.Error(err))
		return
	}
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("Failed to open sqlite export", zap.String("db", path), zap.Error(err))
		return
	}
	defer sqldb.Close()

	if err := mydb.ExportTable(sqldb, table); err != nil {
		logger.Error("Failed to export gene table", zap.String("db", path), zap.Error(err))
		return
	}
	logger.Info("Exported gene table", zap.String("db", path))
}
