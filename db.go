package jigsaw

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/jigsaw/metadata"
	"github.com/bodgit/jigsaw/tile"
	_ "github.com/mattn/go-sqlite3"
)

// PuzzleDB stores tile sets and their solutions in a SQLite database.
type PuzzleDB struct {
	db *sql.DB
}

// Solution is a stored result for a tile set.
type Solution struct {
	CornerProduct uint64           `json:"corner_product"`
	Monsters      int              `json:"monsters"`
	Roughness     int              `json:"roughness"`
	Layout        *metadata.Layout `json:"-"`
}

// Puzzle summarises a stored tile set.
type Puzzle struct {
	ID       int64     `json:"id"`
	CRC      string    `json:"crc"`
	Name     string    `json:"name"`
	Tiles    int       `json:"tiles"`
	Solution *Solution `json:"solution,omitempty"`
}

func NewPuzzleDB(file string) (*PuzzleDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS puzzle (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, name TEXT NOT NULL, count INTEGER NOT NULL, tiles BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS solution (puzzle_id INTEGER NOT NULL UNIQUE, corner_product TEXT NOT NULL, monsters INTEGER NOT NULL, roughness INTEGER NOT NULL, layout BLOB NOT NULL, FOREIGN KEY(puzzle_id) REFERENCES puzzle(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &PuzzleDB{
		db: db,
	}, nil
}

func (db *PuzzleDB) Close() error {
	return db.db.Close()
}

// AddPuzzle stores tiles under name unless an identical tile set is already
// present, and returns the puzzle id and checksum either way.
func (db *PuzzleDB) AddPuzzle(name string, tiles []tile.Tile) (int64, string, error) {
	crc, err := Checksum(tiles)
	if err != nil {
		return 0, "", err
	}

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM puzzle WHERE crc = ?", crc).Scan(&id); err {
	case sql.ErrNoRows:
		b := new(bytes.Buffer)
		if err := tile.Encode(b, tiles); err != nil {
			return 0, "", err
		}
		result, err := db.db.Exec("INSERT INTO puzzle (crc, name, count, tiles) VALUES (?, ?, ?, ?)", crc, name, len(tiles), b.Bytes())
		if err != nil {
			return 0, "", err
		}
		id, err := result.LastInsertId()
		return id, crc, err
	case nil:
		return id, crc, nil
	default:
		return 0, "", err
	}
}

// ImportFile reads a tile set from file and stores it named after the file.
func (db *PuzzleDB) ImportFile(file string) (int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tiles, err := tile.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", file, err)
	}
	if len(tiles) == 0 {
		return 0, fmt.Errorf("%s: %w", file, ErrNoTiles)
	}

	id, _, err := db.AddPuzzle(filepath.Base(file), tiles)
	return id, err
}

// Tiles returns the stored tile set with the given checksum, or nil if
// there is none.
func (db *PuzzleDB) Tiles(crc string) ([]tile.Tile, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT tiles FROM puzzle WHERE crc = ?", crc).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return tile.Decode(bytes.NewReader(b))
	default:
		return nil, err
	}
}

func scanSolution(product string, monsters, roughness int, layout []byte) (*Solution, error) {
	p, err := strconv.ParseUint(product, 10, 64)
	if err != nil {
		return nil, err
	}

	m := metadata.New()
	if err := m.UnmarshalBinary(layout); err != nil {
		return nil, err
	}

	return &Solution{
		CornerProduct: p,
		Monsters:      monsters,
		Roughness:     roughness,
		Layout:        m,
	}, nil
}

// FindSolutionByCRC returns the stored solution for the tile set with the
// given checksum, or nil if it has not been solved.
func (db *PuzzleDB) FindSolutionByCRC(crc string) (*Solution, error) {
	var product string
	var monsters, roughness int
	var layout []byte
	switch err := db.db.QueryRow("SELECT s.corner_product, s.monsters, s.roughness, s.layout FROM solution AS s JOIN puzzle AS p ON s.puzzle_id = p.id WHERE p.crc = ?", crc).Scan(&product, &monsters, &roughness, &layout); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return scanSolution(product, monsters, roughness, layout)
	default:
		return nil, err
	}
}

// SaveSolution stores r as the solution of the given puzzle, replacing any
// earlier one.
func (db *PuzzleDB) SaveSolution(puzzleID int64, r *Result) error {
	if r.Layout == nil {
		return fmt.Errorf("%w: result has no layout", ErrMissingTile)
	}

	layout, err := r.Layout.Metadata().MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO solution (puzzle_id, corner_product, monsters, roughness, layout) VALUES (?, ?, ?, ?, ?)", puzzleID, strconv.FormatUint(r.CornerProduct, 10), r.Monsters, r.Roughness, layout); err != nil {
		return err
	}
	return nil
}

// Puzzles lists every stored tile set with its solution, if any.
func (db *PuzzleDB) Puzzles() ([]Puzzle, error) {
	rows, err := db.db.Query("SELECT p.id, p.crc, p.name, p.count, s.corner_product, s.monsters, s.roughness, s.layout FROM puzzle AS p LEFT JOIN solution AS s ON s.puzzle_id = p.id ORDER BY p.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []Puzzle
	for rows.Next() {
		var p Puzzle
		var product sql.NullString
		var monsters, roughness sql.NullInt64
		var layout []byte
		if err := rows.Scan(&p.ID, &p.CRC, &p.Name, &p.Tiles, &product, &monsters, &roughness, &layout); err != nil {
			return nil, err
		}
		if product.Valid {
			if p.Solution, err = scanSolution(product.String, int(monsters.Int64), int(roughness.Int64), layout); err != nil {
				return nil, err
			}
		}
		puzzles = append(puzzles, p)
	}

	return puzzles, rows.Err()
}
