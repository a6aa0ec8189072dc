// seed genera un script SQL para poblar el catálogo de medicamentos a partir
// de un CSV (nombre, genérico, categoría, laboratorio, precio, costo, stock,
// stock mínimo, vencimiento YYYY-MM-DD, lote).
//
// Uso: go run ./cmd/seed [ruta/medicamentos.csv]
// Por defecto busca medicamentos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_medicines.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/farmacia-pro/pkg/normalize"
)

func main() {
	csvPath := "medicamentos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los catálogos de distribuidores suelen venir en ISO-8859-1.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = 10
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) > 0 && strings.EqualFold(records[0][0], "nombre") {
		records = records[1:] // saltar encabezado
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_medicines.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de medicamentos\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))

	count := 0
	for _, rec := range records {
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		generic := strings.TrimSpace(rec[1])
		category := strings.TrimSpace(rec[2])
		manufacturer := strings.TrimSpace(rec[3])
		price := numericOrZero(rec[4])
		cost := numericOrZero(rec[5])
		quantity := numericOrZero(rec[6])
		minStock := numericOrZero(rec[7])
		expiry := strings.TrimSpace(rec[8])
		batch := strings.TrimSpace(rec[9])

		expiryValue := "NULL"
		if expiry != "" {
			expiryValue = fmt.Sprintf("'%s'", escapeSQL(expiry))
		}
		searchText := normalize.Search(name + " " + generic)

		fmt.Fprintf(out, "INSERT INTO medicines (id, name, generic_name, category, description, price, cost, quantity, min_stock_level, expiry_date, batch_number, manufacturer, search_text)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', '', %s, %s, %s, %s, %s, '%s', '%s', '%s')\n",
			uuid.NewString(), escapeSQL(name), escapeSQL(generic), escapeSQL(category),
			price, cost, quantity, minStock, expiryValue, escapeSQL(batch), escapeSQL(manufacturer),
			escapeSQL(searchText),
		)
		out.WriteString("ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, cost = EXCLUDED.cost;\n")
		count++
	}

	fmt.Printf("Generado %s: %d medicamentos\n", outPath, count)
}

// numericOrZero sanea un campo numérico del CSV; los vacíos quedan en 0.
func numericOrZero(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return "0"
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return "0"
		}
	}
	return s
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// findModuleRoot sube desde el directorio actual hasta encontrar go.mod.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
