// seed genera la migración SQL con los datos de demostración a partir de memory.SeedData(),
// de modo que el store en memoria y PostgreSQL arrancan con el mismo catálogo y usuarios.
//
// Uso: go run ./cmd/seed [ruta/salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Ordering-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ordering-api/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{Env: "development", Level: "info", Service: "ordering-seed"})

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("crear archivo")
	}
	defer out.Close()

	seed := memory.SeedData()
	if err := render(out, seed); err != nil {
		log.Fatal().Err(err).Msg("generar SQL")
	}
	log.Info().
		Str("path", outPath).
		Int("users", len(seed.Users)).
		Int("restaurants", len(seed.Restaurants)).
		Msg("seed generado")
}

// render escribe el script SQL idempotente (ON CONFLICT) para el seed dado.
func render(w io.Writer, seed memory.Seed) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("-- Datos de demostración: usuarios, métodos de pago, restaurantes y menús.\n")
	bw.WriteString("-- Generado por cmd/seed desde memory.SeedData(); no editar a mano.\n")

	var users, methods []string
	for _, u := range seed.Users {
		users = append(users, fmt.Sprintf("(%s, %s, %s, %s)",
			quote(u.ID), quote(u.Name), quote(string(u.Role)), quote(u.Country)))
		for i, pm := range u.PaymentMethods {
			methods = append(methods, fmt.Sprintf("(%s, %d, %s, %s, %s)",
				quote(u.ID), i, quote(pm.ID), quote(pm.Type), quote(pm.Last4)))
		}
	}

	var restaurants, items []string
	for i, r := range seed.Restaurants {
		restaurants = append(restaurants, fmt.Sprintf("(%s, %s, %s, %d)",
			quote(r.ID), quote(r.Name), quote(r.Country), i))
		for j, m := range r.Menu {
			items = append(items, fmt.Sprintf("(%s, %d, %s, %s, %s)",
				quote(r.ID), j, quote(m.ID), quote(m.Name), m.Price.String()))
		}
	}

	writeInsert(bw, "1. Usuarios",
		"users (id, name, role, country)", users,
		"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, country = EXCLUDED.country;")
	writeInsert(bw, "2. Métodos de pago",
		"payment_methods (user_id, position, id, type, last4)", methods,
		"ON CONFLICT (user_id, position) DO NOTHING;")
	writeInsert(bw, "3. Restaurantes",
		"restaurants (id, name, country, position)", restaurants,
		"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, country = EXCLUDED.country, position = EXCLUDED.position;")
	writeInsert(bw, "4. Menús",
		"menu_items (restaurant_id, position, id, name, price)", items,
		"ON CONFLICT (restaurant_id, position) DO UPDATE SET id = EXCLUDED.id, name = EXCLUDED.name, price = EXCLUDED.price;")

	return bw.Flush()
}

func writeInsert(w *bufio.Writer, title, target string, rows []string, conflict string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n-- %s\nINSERT INTO %s VALUES\n", title, target)
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  %s%s\n", r, sep)
	}
	w.WriteString(conflict + "\n")
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
