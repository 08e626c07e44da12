// 运维工具：按时间范围导出读数到 Excel 工作簿
// 用法：export-readings -out readings.xlsx [-from 2026-08-01T00:00:00Z] [-to 2026-08-29T00:00:00Z]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"airzy-ingest/internal/config"
	"airzy-ingest/internal/database"
	"airzy-ingest/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var readingsHeader = []string{
	"ID",
	"Account ID",
	"Created At",
	"Temperature (°C)",
	"Humidity (%)",
	"PM2.5 (µg/m³)",
	"Air Quality",
	"Note",
}

func main() {
	out := flag.String("out", "readings.xlsx", "output xlsx file path")
	fromStr := flag.String("from", "", "start time, inclusive (RFC3339)")
	toStr := flag.String("to", "", "end time, inclusive (RFC3339)")
	flag.Parse()

	var from, to *time.Time
	if *fromStr != "" {
		t, err := time.Parse(time.RFC3339, *fromStr)
		if err != nil {
			log.Fatalf("Invalid -from: %v", err)
		}
		from = &t
	}
	if *toStr != "" {
		t, err := time.Parse(time.RFC3339, *toStr)
		if err != nil {
			log.Fatalf("Invalid -to: %v", err)
		}
		to = &t
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	repo := repository.NewReadingRepository(db, zap.NewNop())
	readings, err := repo.List(context.Background(), from, to, repository.MaxReadingsPerQuery)
	if err != nil {
		log.Fatalf("Failed to list readings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Readings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		log.Fatalf("Failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range readingsHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			log.Fatalf("Failed to build header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			log.Fatalf("Failed to write header: %v", err)
		}
	}

	for i, reading := range readings {
		note := ""
		if reading.Note.Valid {
			note = reading.Note.String
		}
		values := []interface{}{
			reading.ID,
			reading.AccountID,
			reading.CreatedAt.Format(time.RFC3339),
			reading.Temperature,
			reading.Humidity,
			reading.PM25,
			reading.AirQuality,
			note,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				log.Fatalf("Failed to build cell: %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				log.Fatalf("Failed to write row: %v", err)
			}
		}
	}

	if err := f.SaveAs(*out); err != nil {
		log.Fatalf("Failed to save workbook: %v", err)
	}

	fmt.Printf("Exported %d readings to %s\n", len(readings), *out)
}
