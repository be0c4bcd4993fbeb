package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/models"
)

// ReadStatementCSV opens a statement export and parses its rows.
func ReadStatementCSV(path string) ([]models.SongRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()
	return ParseStatementCSV(f)
}

// ParseStatementCSV reads reported songs from CSV. The header must carry "title" and
// "artist"; "iswc" and "amount" are optional. Column names are case-insensitive and
// rows without a title are skipped.
func ParseStatementCSV(r io.Reader) ([]models.SongRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read statement csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("statement csv is empty")
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"title", "artist"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("statement csv: missing required column %q", col)
		}
	}

	songs := make([]models.SongRecord, 0, len(records)-1)
	for line, row := range records[1:] {
		title := getCol(row, colIdx, "title")
		if title == "" {
			continue
		}
		song := models.SongRecord{
			Title:  title,
			Artist: getCol(row, colIdx, "artist"),
			ISWC:   getCol(row, colIdx, "iswc"),
		}
		if raw := getCol(row, colIdx, "amount"); raw != "" {
			amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("statement csv line %d: invalid amount %q", line+2, raw)
			}
			song.GrossAmount = &amount
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func getCol(row []string, colIdx map[string]int, name string) string {
	i, ok := colIdx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
