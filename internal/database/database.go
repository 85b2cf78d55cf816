package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const tableName = "hand_results"

const columns = "id, game_id, game_code, hand_number, created_at, dealer, bidder, trump, winning_team, points, " +
	"team_zero_tricks, team_one_tricks, player1, player2, player3, player4, tricks"

type Service struct {
	db         *sql.DB
	m          *sync.Mutex
	driver     string
	table_name string
}

// New opens the results database and creates the results table if needed.
// driver is "sqlite3" (dsn is a file path) or "pgx" (dsn is a postgres URL).
func New(driver, dsn string) (*Service, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlStmt := `
	create table if not exists ` + tableName + ` (
		id text not null primary key,
		game_id text,
		game_code text,
		hand_number integer,
		created_at text,
		dealer integer,
		bidder integer,
		trump text,
		winning_team integer,
		points integer,
		team_zero_tricks integer,
		team_one_tricks integer,
		player1 text,
		player2 text,
		player3 text,
		player4 text,
		tricks text
	);
	`
	if _, err = db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Service{
		db:         db,
		m:          &sync.Mutex{},
		driver:     driver,
		table_name: tableName,
	}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.table_name
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Service) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (HandResult, error) {
	var result HandResult
	var tricks string
	if err := row.Scan(
		&result.ID,
		&result.GameID,
		&result.GameCode,
		&result.HandNumber,
		&result.CreatedAt,
		&result.Dealer,
		&result.Bidder,
		&result.Trump,
		&result.WinningTeam,
		&result.Points,
		&result.TeamZeroTricks,
		&result.TeamOneTricks,
		&result.Player1,
		&result.Player2,
		&result.Player3,
		&result.Player4,
		&tricks); err != nil {
		return HandResult{}, err
	}
	if tricks != "" {
		if err := json.Unmarshal([]byte(tricks), &result.Tricks); err != nil {
			return HandResult{}, fmt.Errorf("decode tricks of %s: %w", result.ID, err)
		}
	}
	return result, nil
}

func (s *Service) query(query string, args ...any) ([]HandResult, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []HandResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (s *Service) GetAll() ([]HandResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.query("SELECT " + columns + " FROM " + s.table_name + " ORDER BY created_at, hand_number")
}

func (s *Service) GetByID(id string) (HandResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	row := s.db.QueryRow(s.rebind("SELECT "+columns+" FROM "+s.table_name+" WHERE id = ?"), id)
	return scanResult(row)
}

// GetByGame returns the hands of one table in play order.
func (s *Service) GetByGame(gameCode string) ([]HandResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	results, err := s.query("SELECT "+columns+" FROM "+s.table_name+
		" WHERE game_code = ? ORDER BY hand_number", gameCode)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}
	return results, nil
}

func (s *Service) GetByPlayer(player_name string) ([]HandResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	results, err := s.query("SELECT "+columns+" FROM "+s.table_name+
		" WHERE player1 = ? OR player2 = ? OR player3 = ? OR player4 = ? ORDER BY created_at, hand_number",
		player_name,
		player_name,
		player_name,
		player_name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, sql.ErrNoRows // No results found
	}
	return results, nil
}

func (s *Service) Insert(result HandResult) error {
	tricks, err := json.Marshal(result.Tricks)
	if err != nil {
		return fmt.Errorf("encode tricks: %w", err)
	}

	s.m.Lock()
	defer s.m.Unlock()
	_, err = s.db.Exec(s.rebind("INSERT INTO "+s.table_name+" ("+columns+
		") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		result.ID,
		result.GameID,
		result.GameCode,
		result.HandNumber,
		result.CreatedAt,
		result.Dealer,
		result.Bidder,
		string(result.Trump),
		int(result.WinningTeam),
		result.Points,
		result.TeamZeroTricks,
		result.TeamOneTricks,
		result.Player1,
		result.Player2,
		result.Player3,
		result.Player4,
		string(tricks))
	return err
}
