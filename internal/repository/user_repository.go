package repository

import (
	"database/sql"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(in model.NewUser) (*model.User, error) {
	u := model.User{Username: in.Username, Password: in.Password}
	err := r.db.QueryRow(`
		INSERT INTO users(username, password)
		VALUES($1, $2)
		RETURNING id
	`, u.Username, u.Password).Scan(&u.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUser(id int64) (*model.User, error) {
	return r.getOne(`SELECT id, username, password FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	return r.getOne(`SELECT id, username, password FROM users WHERE username = $1`, username)
}

func (r *UserRepository) getOne(query string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Username, &u.Password)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}
