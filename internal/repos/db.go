package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed a small demo catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Components (one table, category specific specs as JSON)
CREATE TABLE IF NOT EXISTS components(
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL CHECK (category IN ('cpu','motherboard','ram','gpu','storage','powerSupply','case','cooling')),
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  model TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  specs_json TEXT NOT NULL DEFAULT '{}',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_components_category   ON components(category);
CREATE INDEX IF NOT EXISTS idx_components_created_at ON components(created_at);

-- Presets
CREATE TABLE IF NOT EXISTS presets(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN ('workstation','office')),
  base_price NUMERIC NOT NULL DEFAULT 0 CHECK (base_price >= 0),
  description TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  image_url TEXT NOT NULL DEFAULT '',
  components_json TEXT NOT NULL DEFAULT '{}',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_presets_created_at ON presets(created_at);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- cookie 'sid' or bearer token
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM components`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo components/presets")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO components(id,category,name,brand,model,price,stock,description,specs_json) VALUES
	  ('cpu-7700x','cpu','Ryzen 7 7700X','AMD','100-100000591WOF',299.00,12,'8-core desktop processor',
	   '{"socket":"AM5","cores":8,"threads":16,"baseClock":4.5,"boostClock":5.4,"tdp":105,"integratedGraphics":true}'),
	  ('cpu-14600k','cpu','Core i5-14600K','Intel','BX8071514600K',319.00,4,'14-core desktop processor',
	   '{"socket":"LGA1700","cores":14,"threads":20,"baseClock":3.5,"boostClock":5.3,"tdp":125,"integratedGraphics":true}'),
	  ('mb-b650','motherboard','B650 Tomahawk','MSI','MAG B650 TOMAHAWK WIFI',219.99,7,'AM5 ATX board',
	   '{"socket":"AM5","chipset":"B650","formFactor":"ATX","memoryType":"DDR5","memorySlots":4,"maxMemory":192}'),
	  ('ram-ddr5-32','ram','Vengeance 32GB','Corsair','CMK32GX5M2B6000C36',109.99,20,'2x16GB DDR5-6000',
	   '{"memoryType":"DDR5","capacity":32,"modules":2,"speed":6000,"casLatency":36}'),
	  ('gpu-4070s','gpu','GeForce RTX 4070 Super','ASUS','DUAL-RTX4070S-O12G',599.99,5,'12GB graphics card',
	   '{"chipset":"RTX 4070 Super","vram":12,"memoryType":"GDDR6X","coreClock":1980,"boostClock":2535,"tdp":220,"length":267}'),
	  ('ssd-990-1tb','storage','990 Pro 1TB','Samsung','MZ-V9P1T0BW',99.99,30,'PCIe 4.0 NVMe SSD',
	   '{"storageType":"NVMe","capacity":1000,"interface":"PCIe 4.0 x4","readSpeed":7450,"writeSpeed":6900}'),
	  ('psu-rm750e','powerSupply','RM750e','Corsair','CP-9020262-NA',99.99,9,'750W fully modular',
	   '{"wattage":750,"efficiency":"80+ Gold","modular":"Full","formFactor":"ATX"}'),
	  ('case-4000d','case','4000D Airflow','Corsair','CC-9011200-WW',104.99,6,'Mid tower',
	   '{"formFactor":"ATX","maxGpuLength":360,"psuFormFactor":"ATX","color":"Black"}'),
	  ('cool-ak620','cooling','AK620','DeepCool','R-AK620-BKNNMT-G',64.99,11,'Dual tower air cooler',
	   '{"coolerType":"Air","supportedSockets":"AM4, AM5, LGA1700","tdpRating":260,"radiatorSize":0}')`)

	tx.MustExec(`INSERT INTO presets(id,name,category,base_price,description,active,components_json) VALUES
	  ('preset-creator','Creator Workstation','workstation',1598.93,'Balanced build for editing and 3D work',1,
	   '{"cpu":"cpu-7700x","motherboard":"mb-b650","ram":"ram-ddr5-32","gpu":"gpu-4070s","storage":"ssd-990-1tb","powerSupply":"psu-rm750e","case":"case-4000d","cooling":"cool-ak620"}')`)

	return tx.Commit()
}

// seedUsers ensures one USER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-staff", "staff@pcforge.test", "Staff", "USER", "Passw0rd!"),
		mk("u-admin", "admin@pcforge.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
