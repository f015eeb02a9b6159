// Package store persists the extracted catalog to a relational table
// and answers user-by-game queries against the users table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"infwebnet-backend/lib/catalog"
	"infwebnet-backend/lib/users"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// ErrEmptyQuery is returned before any statement is issued when a
// query input is empty.
var ErrEmptyQuery = errors.New("query input is empty")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) Store {
	return Store{db: db}
}

// Replace flattens the catalog into one row per game and rewrites the
// Jogos_Plataformas table wholesale. There is no incremental merge:
// the table is dropped and recreated inside one transaction.
func (s Store) Replace(ctx context.Context, entries []catalog.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS Jogos_Plataformas")
	if err != nil {
		return fmt.Errorf("drop catalog table: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		CREATE TABLE Jogos_Plataformas (
			nome_plataforma TEXT NOT NULL,
			nome_jogo TEXT NOT NULL,
			dados_jogo TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create catalog table: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO Jogos_Plataformas (nome_plataforma, nome_jogo, dados_jogo)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, entry := range entries {
		for _, game := range entry.Games {
			attrs, err := json.Marshal(game.Attributes)
			if err != nil {
				return fmt.Errorf("encode game attributes: %w", err)
			}
			_, err = insert.ExecContext(ctx, entry.Platform, game.Name, string(attrs))
			if err != nil {
				return fmt.Errorf("insert game row: %w", err)
			}
		}
	}

	return tx.Commit()
}

// CountGames reports the number of persisted catalog rows.
func (s Store) CountGames(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(
		ctx, "SELECT COUNT(*) FROM Jogos_Plataformas",
	).Scan(&n)
	return n, err
}

// SyncUsers mirrors the externally-owned user directory into the
// Usuarios table so the query path works against a fresh database.
// The games column holds the claim pairs as a JSON string, which is
// what the LIKE query matches against.
func (s Store) SyncUsers(ctx context.Context, userList []users.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO Usuarios (id, nome, sobrenome, email, jogos)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer upsert.Close()

	for _, u := range userList {
		pairs := make([][]string, len(u.Claims))
		for i, c := range u.Claims {
			pairs[i] = []string{c.Game, c.Platform}
		}
		games, err := json.Marshal(pairs)
		if err != nil {
			return fmt.Errorf("encode user games: %w", err)
		}
		_, err = upsert.ExecContext(
			ctx, u.ID, u.FirstName, u.LastName, u.Email, string(games),
		)
		if err != nil {
			return fmt.Errorf("upsert user %s: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

type UserName struct {
	FirstName string
	LastName  string
}

// UsersByGame returns the identity pairs of users whose games field
// contains the given name, case-insensitively. Empty input is rejected
// locally, no statement is issued.
func (s Store) UsersByGame(ctx context.Context, game string) ([]UserName, error) {
	game = strings.TrimSpace(game)
	if game == "" {
		return nil, ErrEmptyQuery
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT nome, sobrenome
		FROM Usuarios
		WHERE jogos LIKE ?
	`, "%"+game+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserName
	for rows.Next() {
		var u UserName
		err = rows.Scan(&u.FirstName, &u.LastName)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
