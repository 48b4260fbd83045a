// seed puebla los catálogos fijos de la base: roles, planes iniciales y el
// primer super admin (credenciales por variables de entorno).
//
// Uso: go run ./cmd/seed
// Es idempotente: los upserts usan ON CONFLICT y se puede relanzar sin daño.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/issaqr/inventory-qr-api/internal/infrastructure/postgres"
	"github.com/issaqr/inventory-qr-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Catálogo fijo de roles
	roles := []struct {
		id   int16
		name string
	}{
		{1, "super_admin"},
		{2, "school_admin"},
		{3, "teacher"},
		{4, "inventory_manager"},
	}
	for _, r := range roles {
		_, err := pool.Exec(ctx, `
			INSERT INTO roles (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, r.id, r.name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed rol %s: %v\n", r.name, err)
			os.Exit(1)
		}
	}
	fmt.Println("roles: ok")

	// Planes iniciales
	plans := []struct {
		name     string
		price    string
		days     int
		features []string
		desc     string
	}{
		{"Básico", "49900", 30, []string{"1 colegio", "hasta 500 activos", "reportes"}, "Plan mensual para un colegio pequeño"},
		{"Institucional", "129900", 30, []string{"hasta 5 colegios", "activos ilimitados", "reportes", "exportación PDF"}, "Plan mensual para redes de colegios"},
		{"Anual", "499900", 365, []string{"hasta 5 colegios", "activos ilimitados", "reportes", "exportación PDF", "soporte prioritario"}, "Plan anual con descuento"},
	}
	for _, p := range plans {
		_, err := pool.Exec(ctx, `
			INSERT INTO plans (id, name, price, duration_days, features_list, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			ON CONFLICT (name) DO NOTHING`,
			uuid.NewString(), p.name, p.price, p.days, p.features, p.desc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed plan %s: %v\n", p.name, err)
			os.Exit(1)
		}
	}
	fmt.Println("planes: ok")

	// Primer super admin, solo si se configuró
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		fmt.Println("super admin: omitido (SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD no definidos)")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	adminID := uuid.NewString()
	now := time.Now()
	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, full_name, email, password_hash, status, created_at, updated_at)
		VALUES ($1, 'Administrador', $2, $3, 'active', $4, $4)
		ON CONFLICT (email) DO NOTHING`, adminID, adminEmail, string(hash), now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed super admin: %v\n", err)
		os.Exit(1)
	}
	if tag.RowsAffected() == 0 {
		// Ya existía: recuperar su id para asegurar el rol.
		if err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, adminEmail).Scan(&adminID); err != nil {
			fmt.Fprintf(os.Stderr, "buscar super admin: %v\n", err)
			os.Exit(1)
		}
	}

	// El rol super_admin exige school_id; se ancla a un colegio sintético.
	const systemSchool = "00000000-0000-0000-0000-000000000001"
	_, err = pool.Exec(ctx, `
		INSERT INTO schools (id, name, created_at, updated_at)
		VALUES ($1, 'Sistema', NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`, systemSchool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed colegio sistema: %v\n", err)
		os.Exit(1)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id, school_id, assigned_at)
		VALUES ($1, 1, $2, NOW())
		ON CONFLICT DO NOTHING`, adminID, systemSchool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed rol super admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("super admin: ok")
}
