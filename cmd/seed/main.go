// Command seed creates the database schema and fills it with a realistic
// demo hotel: seven sectors, their shift templates and positions, a full
// staff roster with contracts and leave balances, and three login accounts
// (admin, one manager, one employee).
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/velamar-hotels/hr-backend-go/internal/config"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sectors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS positions (
		id BIGSERIAL PRIMARY KEY,
		sector_id BIGINT NOT NULL REFERENCES sectors(id),
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shift_templates (
		id BIGSERIAL PRIMARY KEY,
		sector_id BIGINT NOT NULL REFERENCES sectors(id),
		name TEXT NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		oib CHAR(11) NOT NULL UNIQUE,
		address TEXT,
		phone TEXT,
		email TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		sector_id BIGINT REFERENCES sectors(id),
		position_id BIGINT REFERENCES positions(id),
		hire_date DATE NOT NULL,
		termination_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		type TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		gross NUMERIC(10,2) NOT NULL,
		net NUMERIC(10,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'planned'
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id BIGSERIAL PRIMARY KEY,
		sector_id BIGINT NOT NULL REFERENCES sectors(id),
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		date DATE NOT NULL,
		label TEXT NOT NULL,
		origin TEXT NOT NULL DEFAULT 'manual',
		UNIQUE (employee_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		days INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		decided_by BIGINT,
		decided_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS leave_balances (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		year INT NOT NULL,
		entitled_days INT NOT NULL,
		used_days INT NOT NULL DEFAULT 0,
		UNIQUE (employee_id, year)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		employee_id BIGINT REFERENCES employees(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		role TEXT,
		sector_id BIGINT REFERENCES sectors(id),
		kind TEXT NOT NULL,
		message TEXT NOT NULL,
		link TEXT,
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sick_leaves (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'submitted',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS overtime_entries (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		date DATE NOT NULL,
		hours DOUBLE PRECISION NOT NULL,
		reason TEXT,
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		approved_by BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id UUID PRIMARY KEY,
		user_id BIGINT,
		action TEXT NOT NULL,
		details JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

type shiftSpec struct {
	name  string
	start string
	end   string
}

type positionSpec struct {
	name  string
	count int
	gross float64
}

type sectorSpec struct {
	name      string
	shifts    []shiftSpec
	positions []positionSpec
}

var hotelStructure = []sectorSpec{
	{
		name: "Recepcija",
		shifts: []shiftSpec{
			{"Jutarnja", "07:00", "15:00"}, {"Popodnevna", "15:00", "23:00"}, {"Noćna", "23:00", "07:00"},
		},
		positions: []positionSpec{
			{"Voditelj Recepcije", 1, 2200}, {"Recepcioner", 6, 1400}, {"Nosač prtljage (Bellboy)", 3, 1100},
		},
	},
	{
		name: "Domaćinstvo",
		shifts: []shiftSpec{
			{"Jutarnja", "06:00", "14:00"}, {"Dnevna", "08:00", "16:00"}, {"Popodnevna", "14:00", "22:00"},
		},
		positions: []positionSpec{
			{"Voditeljica Domaćinstva", 1, 1800}, {"Sobarica", 12, 1200}, {"Čistačica", 4, 1100},
		},
	},
	{
		name: "Kuhinja",
		shifts: []shiftSpec{
			{"Doručak", "05:00", "13:00"}, {"Priprema", "09:00", "17:00"}, {"Večera", "15:00", "23:00"},
		},
		positions: []positionSpec{
			{"Executive Chef", 1, 3500}, {"Sous Chef", 2, 2400}, {"Kuhar", 6, 1600},
			{"Pomoćni kuhar", 4, 1300}, {"Perač suđa", 5, 1100},
		},
	},
	{
		name: "Restoran i Bar",
		shifts: []shiftSpec{
			{"Jutarnja", "06:30", "14:30"}, {"Međusmjena", "11:00", "19:00"}, {"Večernja", "16:00", "23:59"},
		},
		positions: []positionSpec{
			{"Voditelj Sale (Maître d')", 1, 2000}, {"Konobar", 10, 1300}, {"Barmen", 4, 1400}, {"Servir", 2, 1100},
		},
	},
	{
		name: "Održavanje",
		shifts: []shiftSpec{
			{"Prva", "07:00", "15:00"}, {"Druga", "14:00", "22:00"},
		},
		positions: []positionSpec{
			{"Voditelj Održavanja", 1, 2100}, {"Domar", 4, 1350},
		},
	},
	{
		name: "Wellness & Spa",
		shifts: []shiftSpec{
			{"Cijeli dan", "09:00", "17:00"}, {"Kasna", "13:00", "21:00"},
		},
		positions: []positionSpec{
			{"Fizioterapeut / Maser", 4, 1500}, {"Recepcioner Wellnessa", 2, 1250},
		},
	},
	{
		name: "Uprava",
		shifts: []shiftSpec{
			{"Uredsko", "08:00", "16:00"},
		},
		positions: []positionSpec{
			{"Generalni Direktor", 1, 4500}, {"HR Manager", 1, 2500}, {"Voditelj Prodaje", 1, 2400},
		},
	},
}

var firstNames = []string{
	"Ivan", "Marko", "Ana", "Marija", "Petar", "Josip", "Ivana", "Tomislav", "Katarina", "Luka",
	"Ante", "Željka", "Davor", "Maja", "Filip", "Stjepan", "Nikola", "Marina", "Kristina", "Zoran",
	"Goran", "Sanja", "Robert", "Damir", "Igor", "Vlatka", "Branko", "Snježana", "Mario", "Dario",
}

var lastNames = []string{
	"Horvat", "Kovač", "Babić", "Marić", "Jurić", "Novak", "Kovačić", "Vuković", "Knežević",
	"Marković", "Petrović", "Matić", "Božić", "Pavlović", "Rukavina", "Blažević", "Grgić",
	"Pavić", "Radić", "Šarić", "Lovrić", "Vidović", "Perić", "Tokić", "Jukić",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Fatal("Schema error: ", err)
		}
	}
	log.Println("Schema ready")

	var employees int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&employees); err != nil {
		log.Fatal("Count error: ", err)
	}
	if employees > 0 {
		log.Println("Database already seeded, nothing to do")
		return
	}

	if err := seed(ctx, db); err != nil {
		log.Fatal("Seed error: ", err)
	}
	log.Println("Demo hotel seeded")
}

func seed(ctx context.Context, db *database.DB) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	year := time.Now().Year()
	usedOIBs := map[string]bool{}

	genOIB := func() string {
		for {
			oib := ""
			for i := 0; i < 11; i++ {
				oib += fmt.Sprint(rng.Intn(10))
			}
			if !usedOIBs[oib] {
				usedOIBs[oib] = true
				return oib
			}
		}
	}

	var firstManagerID, firstLineEmployeeID int64

	for _, sector := range hotelStructure {
		var sectorID int64
		err := db.QueryRow(ctx, `INSERT INTO sectors (name) VALUES ($1) RETURNING id`, sector.name).Scan(&sectorID)
		if err != nil {
			return fmt.Errorf("insert sector %q: %w", sector.name, err)
		}

		for _, shift := range sector.shifts {
			_, err := db.Exec(ctx,
				`INSERT INTO shift_templates (sector_id, name, start_time, end_time) VALUES ($1, $2, $3, $4)`,
				sectorID, shift.name, shift.start, shift.end)
			if err != nil {
				return fmt.Errorf("insert shift template: %w", err)
			}
		}

		for _, position := range sector.positions {
			var positionID int64
			err := db.QueryRow(ctx,
				`INSERT INTO positions (sector_id, name) VALUES ($1, $2) RETURNING id`,
				sectorID, position.name).Scan(&positionID)
			if err != nil {
				return fmt.Errorf("insert position: %w", err)
			}

			for i := 0; i < position.count; i++ {
				first := firstNames[rng.Intn(len(firstNames))]
				last := lastNames[rng.Intn(len(lastNames))]
				email := fmt.Sprintf("%s.%s@velamar-demo.hr", strings.ToLower(first), strings.ToLower(last))

				var employeeID int64
				err := db.QueryRow(ctx, `
					INSERT INTO employees (first_name, last_name, oib, address, phone, email, status, sector_id, position_id, hire_date)
					VALUES ($1, $2, $3, $4, $5, $6, 'active', $7, $8, $9)
					RETURNING id`,
					first, last, genOIB(), "Ulica Hotela 1, Zagreb", "091/123-4567", email,
					sectorID, positionID, "2023-01-01").Scan(&employeeID)
				if err != nil {
					return fmt.Errorf("insert employee: %w", err)
				}

				gross := position.gross
				_, err = db.Exec(ctx, `
					INSERT INTO contracts (employee_id, type, start_date, gross, net)
					VALUES ($1, 'na neodređeno', '2023-01-01', $2, $3)`,
					employeeID, gross, gross*0.72)
				if err != nil {
					return fmt.Errorf("insert contract: %w", err)
				}

				_, err = db.Exec(ctx, `
					INSERT INTO leave_balances (employee_id, year, entitled_days, used_days)
					VALUES ($1, $2, 24, $3)`,
					employeeID, year, rng.Intn(11))
				if err != nil {
					return fmt.Errorf("insert leave balance: %w", err)
				}

				if firstManagerID == 0 && sector.name == "Recepcija" && position.name == "Voditelj Recepcije" {
					firstManagerID = employeeID
				}
				if firstLineEmployeeID == 0 && sector.name == "Recepcija" && position.name == "Recepcioner" {
					firstLineEmployeeID = employeeID
				}
			}
		}
	}

	// A couple of planned events for the AI prompt to pick up.
	weekend := nextSaturday(time.Now())
	_, err := db.Exec(ctx, `
		INSERT INTO events (name, type, start_date, end_date, description, status)
		VALUES
			('Vjenčanje Petrović', 'banquet', $1, $1, '120 uzvanika, velika dvorana', 'planned'),
			('Kongres turizma', 'conference', $2, $3, 'Dvodnevni kongres, 200 sudionika', 'planned')`,
		weekend.Format("2006-01-02"),
		weekend.AddDate(0, 0, 7).Format("2006-01-02"),
		weekend.AddDate(0, 0, 8).Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("insert events: %w", err)
	}

	if err := createUser(ctx, db, "admin", "Admin123!", "admin", nil); err != nil {
		return err
	}
	if firstManagerID != 0 {
		if err := createUser(ctx, db, "voditelj", "Voditelj123!", "manager", &firstManagerID); err != nil {
			return err
		}
	}
	if firstLineEmployeeID != 0 {
		if err := createUser(ctx, db, "recepcioner", "Recepcija123!", "employee", &firstLineEmployeeID); err != nil {
			return err
		}
	}

	return nil
}

func createUser(ctx context.Context, db *database.DB, username, password, role string, employeeID *int64) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO users (username, password_hash, role, employee_id)
		VALUES ($1, $2, $3, $4)`,
		username, string(hash), role, employeeID)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", username, err)
	}
	return nil
}

func nextSaturday(t time.Time) time.Time {
	for t.Weekday() != time.Saturday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

