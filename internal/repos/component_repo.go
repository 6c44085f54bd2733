package repos

import (
	"pcforge/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const componentCols = `
    id, category, name, brand, model, price, stock, description, image_url, specs_json,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

type ComponentRepo struct{ db *sqlx.DB }

func NewComponentRepo(db *sqlx.DB) *ComponentRepo { return &ComponentRepo{db: db} }

// ListByCategory returns every component of a category, oldest first.
func (r *ComponentRepo) ListByCategory(cat domain.Category) ([]domain.Component, error) {
	out := []domain.Component{}
	err := r.db.Select(&out, `
  SELECT`+componentCols+`
  FROM components
  WHERE category = ?
  ORDER BY created_at, rowid
`, cat)
	return out, err
}

func (r *ComponentRepo) Get(id string) (domain.Component, error) {
	var c domain.Component
	err := r.db.Get(&c, `SELECT`+componentCols+` FROM components WHERE id = ?`, id)
	return c, notFound(err)
}

// GetMany loads the given ids; unknown ids are skipped.
func (r *ComponentRepo) GetMany(ids []string) ([]domain.Component, error) {
	out := []domain.Component{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT`+componentCols+` FROM components WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	err = r.db.Select(&out, query, args...)
	return out, err
}

// Create inserts c, assigning an id when it has none.
func (r *ComponentRepo) Create(c *domain.Component) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Specs == nil {
		c.Specs = domain.Specs{}
	}
	_, err := r.db.Exec(`
		INSERT INTO components(id,category,name,brand,model,price,stock,description,image_url,specs_json,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,strftime('%Y-%m-%d %H:%M:%f','now'))
	`, c.ID, c.Category, c.Name, c.Brand, c.Model, c.Price, c.Stock, c.Description, c.ImageURL, c.Specs)
	if err != nil {
		return err
	}
	return r.db.Get(&c.CreatedAt, `SELECT created_at FROM components WHERE id = ?`, c.ID)
}

// Update overwrites the editable columns of c. The image is changed through UpdateImageURL.
func (r *ComponentRepo) Update(c *domain.Component) error {
	if c.Specs == nil {
		c.Specs = domain.Specs{}
	}
	res, err := r.db.Exec(`
		UPDATE components
		SET name=?, brand=?, model=?, price=?, stock=?, description=?, specs_json=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=? AND category=?
	`, c.Name, c.Brand, c.Model, c.Price, c.Stock, c.Description, c.Specs, c.ID, c.Category)
	return affected(res, err)
}

func (r *ComponentRepo) UpdateImageURL(id, url string) error {
	res, err := r.db.Exec(`UPDATE components SET image_url=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, url, id)
	return affected(res, err)
}

func (r *ComponentRepo) Delete(cat domain.Category, id string) error {
	res, err := r.db.Exec(`DELETE FROM components WHERE id=? AND category=?`, id, cat)
	return affected(res, err)
}
