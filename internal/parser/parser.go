// Package parser transforme un CSV "large" (une ligne par participant, une
// colonne par date) en enregistrements normalisés par participant et par
// jour. Les erreurs de format incluent la liste des en-têtes rencontrés pour
// aider l'utilisateur à corriger son fichier.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Erreurs de parsing : comparables avec errors.Is.
var (
	ErrEmptyFile     = errors.New("empty file")
	ErrMissingColumn = errors.New("missing required column")
	ErrNoDateColumns = errors.New("no date columns")
	ErrNoValidRows   = errors.New("no valid rows")
)

var dateHeaderPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DailyData est le nombre de pas d'un participant pour une date donnée.
type DailyData struct {
	Date     string  `json:"date"`
	Steps    int     `json:"steps"`
	Distance float64 `json:"distance"`
}

// ParticipantRow est le résultat du parsing d'une ligne de données :
// TotalSteps est toujours dérivé en re-sommant les colonnes de dates, jamais
// repris d'une éventuelle colonne "total" du fichier.
type ParticipantRow struct {
	Name          string      `json:"name"`
	TotalSteps    int         `json:"totalSteps"`
	TotalDistance float64     `json:"totalDistance"`
	DailyData     []DailyData `json:"dailyData"`
}

// Result est la sortie complète du parsing : les participants dans l'ordre
// du fichier et les dates découvertes dans l'en-tête.
type Result struct {
	Rows  []ParticipantRow
	Dates []string
}

// columnSpec décrit la résolution d'un champ logique vers une colonne CSV :
// correspondance exacte d'abord, puis sous-chaîne, dans l'ordre déclaré.
type columnSpec struct {
	field  string
	exact  []string
	substr []string
}

var (
	nameColumn = columnSpec{
		field:  "name",
		exact:  []string{"name", "nom", "participant", "member"},
		substr: []string{"name", "nom"},
	}
	totalDistanceColumn = columnSpec{
		field:  "total distance",
		exact:  []string{"total distance", "total_distance", "totaldistance", "distance"},
		substr: []string{"distance"},
	}
)

// match retourne l'index de la colonne correspondante, ou -1.
func (c columnSpec) match(headers []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, candidate := range c.exact {
			if lower == candidate {
				return i
			}
		}
	}
	for i, h := range headers {
		lower := strings.ToLower(h)
		if dateHeaderPattern.MatchString(lower) {
			continue
		}
		for _, candidate := range c.substr {
			if strings.Contains(lower, candidate) {
				return i
			}
		}
	}
	return -1
}

// Parse analyse le texte CSV brut et retourne les participants normalisés.
func Parse(raw string) (*Result, error) {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrEmptyFile)
	}

	delimiter := detectDelimiter(lines[0])
	headers := splitCells(lines[0], delimiter)

	nameIdx := nameColumn.match(headers)
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s (headers: %s)", ErrMissingColumn, nameColumn.field, strings.Join(headers, ", "))
	}

	var dateIdx []int
	var dates []string
	for i, h := range headers {
		if dateHeaderPattern.MatchString(h) {
			dateIdx = append(dateIdx, i)
			dates = append(dates, h)
		}
	}
	if len(dateIdx) == 0 {
		return nil, fmt.Errorf("%w (headers: %s)", ErrNoDateColumns, strings.Join(headers, ", "))
	}

	// Colonne d'agrégat optionnelle : la distance totale ne sert que de clé
	// de répartition. Un éventuel "Total Steps" déclaré est ignoré, les pas
	// sont toujours re-sommés depuis les colonnes de dates.
	distanceIdx := totalDistanceColumn.match(headers)

	var rows []ParticipantRow
	for _, line := range lines[1:] {
		cells := splitCells(line, delimiter)

		name := cellAt(cells, nameIdx)
		if name == "" {
			continue
		}

		daily := make([]DailyData, 0, len(dateIdx))
		total := 0
		hasNumeric := false
		for j, idx := range dateIdx {
			cell := cellAt(cells, idx)
			steps, ok := parseSteps(cell)
			if ok {
				hasNumeric = true
			}
			total += steps
			daily = append(daily, DailyData{Date: dates[j], Steps: steps})
		}

		// Une ligne sans nom ou sans aucune valeur numérique est ignorée
		if !hasNumeric {
			continue
		}

		totalDistance := 0.0
		if distanceIdx >= 0 {
			totalDistance = parseFloat(cellAt(cells, distanceIdx))
		}

		// Distance journalière imputée proportionnellement aux pas
		if totalDistance > 0 && total > 0 {
			for j := range daily {
				daily[j].Distance = float64(daily[j].Steps) / float64(total) * totalDistance
			}
		}

		rows = append(rows, ParticipantRow{
			Name:          name,
			TotalSteps:    total,
			TotalDistance: totalDistance,
			DailyData:     daily,
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: every data row was filtered out", ErrNoValidRows)
	}

	return &Result{Rows: rows, Dates: dates}, nil
}

// detectDelimiter retourne ';' seulement si l'en-tête contient un
// point-virgule et aucune virgule, sinon ','.
func detectDelimiter(header string) rune {
	if strings.ContainsRune(header, ';') && !strings.ContainsRune(header, ',') {
		return ';'
	}
	return ','
}

func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitCells découpe une ligne et nettoie chaque cellule : espaces et
// guillemets englobants supprimés.
func splitCells(line string, delimiter rune) []string {
	parts := strings.Split(line, string(delimiter))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"'`)
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// parseSteps convertit une cellule en nombre de pas. Les cellules non
// numériques valent 0 et ne comptent pas comme valeur présente.
func parseSteps(cell string) (int, bool) {
	if cell == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(cell, " ", "")
	if n, err := strconv.Atoi(cleaned); err == nil && n >= 0 {
		return n, true
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil && f >= 0 {
		return int(f), true
	}
	return 0, false
}

func parseFloat(cell string) float64 {
	if cell == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(cell, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
