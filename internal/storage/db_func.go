package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/XJIeI5/calculator/internal/diary"
	"github.com/dgrijalva/jwt-go"
)

var errorUnauthorized = errors.New("unauthorized")

func CreateTables(ctx context.Context, db *sql.DB) error {
	const (
		usersTable = `
		CREATE TABLE IF NOT EXISTS users(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			login TEXT NOT NULL UNIQUE,
			hashedPassword TEXT NOT NULL
		);`

		entriesTable = `
		CREATE TABLE IF NOT EXISTS entries(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			userId INTEGER NOT NULL,
			domain TEXT NOT NULL,
			heading TEXT NOT NULL,
			contents TEXT NOT NULL,
			created INTEGER NOT NULL,

			FOREIGN KEY (userId) REFERENCES users (id)
		);`
	)

	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, entriesTable); err != nil {
		return err
	}
	return nil
}

func (s *storage) validateToken(bearerToken string) (*jwt.Token, error) {
	tokenString := strings.TrimPrefix(bearerToken, "Bearer ")
	return jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
}

func (s *storage) getUserId(bearerToken string) (int64, error) {
	if bearerToken == "" {
		return 0, fmt.Errorf(`%w: no header "Authorization"`, errorUnauthorized)
	}
	token, err := s.validateToken(bearerToken)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errorUnauthorized, err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", errorUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: bad claims", errorUnauthorized)
	}
	strId, _ := claims["id"].(string)
	id, err := strconv.ParseInt(strId, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad user id", errorUnauthorized)
	}
	return id, nil
}

func (s *storage) newToken(userId int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  strconv.FormatInt(userId, 10),
		"nbf": now.Unix(),
		"exp": now.Add(s.cfg.TokenTTL).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}

func storeUser(ctx context.Context, db *sql.DB, login string, hashedPassword []byte) (int64, error) {
	var q string = `
	INSERT INTO users (login, hashedPassword) VALUES ($1, $2)
	`
	res, err := db.ExecContext(ctx, q, login, string(hashedPassword))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getUser(ctx context.Context, db *sql.DB, login string) (int64, string, error) {
	var q string = `
	SELECT id, hashedPassword FROM users WHERE login = $1
	`
	var (
		id             int64
		hashedPassword string
	)
	err := db.QueryRowContext(ctx, q, login).Scan(&id, &hashedPassword)
	return id, hashedPassword, err
}

type record struct {
	diary.Entry
	Domain domain `json:"domain"`
}

func storeEntry(ctx context.Context, db *sql.DB, userId int64, d domain, e diary.Entry) (int64, error) {
	var q string = `
	INSERT INTO entries (userId, domain, heading, contents, created) VALUES ($1, $2, $3, $4, $5)
	`
	res, err := db.ExecContext(ctx, q, userId, string(d), e.Heading, e.Contents, e.Date.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func getEntry(ctx context.Context, db *sql.DB, userId, id int64) (record, error) {
	var q string = `
	SELECT id, domain, heading, contents, created FROM entries WHERE id = $1 AND userId = $2
	`
	return scanRecord(db.QueryRowContext(ctx, q, id, userId))
}

func listEntries(ctx context.Context, db *sql.DB, userId int64) ([]record, error) {
	var q string = `
	SELECT id, domain, heading, contents, created FROM entries WHERE userId = $1 ORDER BY id
	`
	rows, err := db.QueryContext(ctx, q, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (record, error) {
	var (
		rec     record
		d       string
		created int64
	)
	if err := row.Scan(&rec.ID, &d, &rec.Heading, &rec.Contents, &created); err != nil {
		return record{}, err
	}
	rec.Domain = domain(d)
	rec.Date = time.Unix(0, created)
	return rec, nil
}
