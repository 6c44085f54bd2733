package repos

import (
	"database/sql"
	"errors"

	"pcforge/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const presetCols = `
    id, name, category, base_price, description, active, image_url, components_json,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

type PresetRepo struct{ db *sqlx.DB }

func NewPresetRepo(db *sqlx.DB) *PresetRepo { return &PresetRepo{db: db} }

func (r *PresetRepo) List() ([]domain.Preset, error) {
	out := []domain.Preset{}
	err := r.db.Select(&out, `SELECT`+presetCols+` FROM presets ORDER BY created_at, rowid`)
	return out, err
}

func (r *PresetRepo) Get(id string) (domain.Preset, error) {
	var p domain.Preset
	err := r.db.Get(&p, `SELECT`+presetCols+` FROM presets WHERE id = ?`, id)
	return p, notFound(err)
}

func (r *PresetRepo) Create(p *domain.Preset) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Components == nil {
		p.Components = domain.Selection{}
	}
	_, err := r.db.Exec(`
		INSERT INTO presets(id,name,category,base_price,description,active,image_url,components_json,created_at)
		VALUES(?,?,?,?,?,?,?,?,strftime('%Y-%m-%d %H:%M:%f','now'))
	`, p.ID, p.Name, p.Category, p.BasePrice, p.Description, p.Active, p.ImageURL, p.Components)
	if err != nil {
		return err
	}
	return r.db.Get(&p.CreatedAt, `SELECT created_at FROM presets WHERE id = ?`, p.ID)
}

func (r *PresetRepo) Update(p *domain.Preset) error {
	res, err := r.db.Exec(`
		UPDATE presets
		SET name=?, category=?, base_price=?, description=?, active=?, components_json=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, p.Name, p.Category, p.BasePrice, p.Description, p.Active, p.Components, p.ID)
	return affected(res, err)
}

func (r *PresetRepo) UpdateImageURL(id, url string) error {
	res, err := r.db.Exec(`UPDATE presets SET image_url=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, url, id)
	return affected(res, err)
}

func (r *PresetRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM presets WHERE id=?`, id)
	return affected(res, err)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
