// Package catalog indexes a data tree into a sqlite database so sessions
// and files can be queried without touching the tree again. Every scan is
// kept under its own id; queries default to the most recent one.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/neurodatakit/datablock/internal/parsing"
)

// ErrNoScans marks a query against a catalog that has never been scanned.
var ErrNoScans = errors.New("catalog has no scans")

// Catalog wraps the sqlite database holding scan results.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if necessary) the catalog database at path and
// applies the schema.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error { return c.db.Close() }

// ScanResult summarizes one pass over a data tree.
type ScanResult struct {
	ID       string
	Root     string
	Sessions int
	Files    int
	Skipped  int
}

// Scan walks root on fsys, recording every session directory and data file
// whose name the grammars accept. Entries that fail to parse, or whose name
// tokens disagree with the directories above them, are counted as skipped.
// A nil filesystem means the real disk.
func (c *Catalog) Scan(fsys billy.Filesystem, root string) (ScanResult, error) {
	if fsys == nil {
		fsys = osfs.New("/")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return ScanResult{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return ScanResult{}, fmt.Errorf("mint scan id: %w", err)
	}
	res := ScanResult{ID: id.String(), Root: abs}

	tx, err := c.db.Begin()
	if err != nil {
		return ScanResult{}, err
	}
	defer tx.Rollback()

	started := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO scans (id, root, started_at) VALUES (?, ?, ?)`,
		res.ID, abs, started,
	); err != nil {
		return ScanResult{}, err
	}

	if err := c.walk(tx, fsys, abs, &res); err != nil {
		return ScanResult{}, err
	}

	if _, err := tx.Exec(
		`UPDATE scans SET sessions = ?, files = ?, skipped = ? WHERE id = ?`,
		res.Sessions, res.Files, res.Skipped, res.ID,
	); err != nil {
		return ScanResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return ScanResult{}, err
	}
	return res, nil
}

func (c *Catalog) walk(tx *sql.Tx, fsys billy.Filesystem, root string, res *ScanResult) error {
	datasets, err := dirNames(fsys, root)
	if err != nil {
		return err
	}
	for _, dataset := range datasets {
		subjects, err := dirNames(fsys, filepath.Join(root, dataset))
		if err != nil {
			return err
		}
		for _, subject := range subjects {
			sessions, err := dirNames(fsys, filepath.Join(root, dataset, subject))
			if err != nil {
				return err
			}
			for _, session := range sessions {
				parsed, err := parsing.ParseSessionName(session)
				if err != nil {
					res.Skipped++
					continue
				}
				if err := insertSession(tx, res.ID, dataset, subject, parsed); err != nil {
					return err
				}
				res.Sessions++
				if err := c.walkSession(tx, fsys, root, dataset, subject, session, res); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *Catalog) walkSession(tx *sql.Tx, fsys billy.Filesystem, root, dataset, subject, session string, res *ScanResult) error {
	domains, err := dirNames(fsys, filepath.Join(root, dataset, subject, session))
	if err != nil {
		return err
	}
	for _, domain := range domains {
		entries, err := fsys.ReadDir(filepath.Join(root, dataset, subject, session, domain))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			parsed, err := parsing.ParseFileName(e.Name())
			if err != nil || parsed.Subject != subject || parsed.Session.Name != session || parsed.Domain != domain {
				res.Skipped++
				continue
			}
			if err := insertFile(tx, res.ID, dataset, e.Name(), parsed); err != nil {
				return err
			}
			res.Files++
		}
	}
	return nil
}

func insertSession(tx *sql.Tx, scanID, dataset, subject string, s parsing.SessionName) error {
	idx := sql.NullInt64{Int64: int64(s.Index), Valid: s.HasIndex}
	_, err := tx.Exec(
		`INSERT INTO sessions (scan_id, dataset, subject, name, type, date, idx)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		scanID, dataset, subject, s.Name, s.Type, s.Date, idx,
	)
	return err
}

func insertFile(tx *sql.Tx, scanID, dataset, name string, f parsing.FileName) error {
	idx := sql.NullInt64{Int64: int64(f.Index), Valid: f.HasIndex}
	_, err := tx.Exec(
		`INSERT INTO files (scan_id, dataset, subject, session, domain, name, blocktype, block_idx, channels, suffix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scanID, dataset, f.Subject, f.Session.Name, f.Domain, name,
		f.Blocktype, idx, strings.Join(f.Channels, "-"), f.Suffix,
	)
	return err
}

func dirNames(fsys billy.Filesystem, path string) ([]string, error) {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// LatestScanID returns the id of the most recent scan.
func (c *Catalog) LatestScanID() (string, error) {
	var id string
	err := c.db.QueryRow(
		`SELECT id FROM scans ORDER BY started_at DESC, id DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoScans
	}
	return id, err
}

// Filter narrows a catalog query; empty fields match anything.
type Filter struct {
	Dataset string
	Subject string
	Session string
	Domain  string
}

func (f Filter) where(conds []string, args []any) ([]string, []any) {
	if f.Dataset != "" {
		conds, args = append(conds, "dataset = ?"), append(args, f.Dataset)
	}
	if f.Subject != "" {
		conds, args = append(conds, "subject = ?"), append(args, f.Subject)
	}
	if f.Session != "" {
		conds, args = append(conds, "session = ?"), append(args, f.Session)
	}
	if f.Domain != "" {
		conds, args = append(conds, "domain = ?"), append(args, f.Domain)
	}
	return conds, args
}

// SessionRow is one recorded session directory.
type SessionRow struct {
	Dataset  string
	Subject  string
	Name     string
	Type     string
	Date     string
	Index    int
	HasIndex bool
}

// Sessions returns the sessions of a scan, filtered and ordered by dataset,
// subject, and name. An empty scanID means the most recent scan.
func (c *Catalog) Sessions(scanID string, f Filter) ([]SessionRow, error) {
	scanID, err := c.resolveScanID(scanID)
	if err != nil {
		return nil, err
	}
	conds, args := []string{"scan_id = ?"}, []any{scanID}
	if f.Dataset != "" {
		conds, args = append(conds, "dataset = ?"), append(args, f.Dataset)
	}
	if f.Subject != "" {
		conds, args = append(conds, "subject = ?"), append(args, f.Subject)
	}
	if f.Session != "" {
		conds, args = append(conds, "name = ?"), append(args, f.Session)
	}
	rows, err := c.db.Query(
		`SELECT dataset, subject, name, type, date, idx FROM sessions
		 WHERE `+strings.Join(conds, " AND ")+`
		 ORDER BY dataset, subject, name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		var idx sql.NullInt64
		if err := rows.Scan(&r.Dataset, &r.Subject, &r.Name, &r.Type, &r.Date, &idx); err != nil {
			return nil, err
		}
		r.Index, r.HasIndex = int(idx.Int64), idx.Valid
		out = append(out, r)
	}
	return out, rows.Err()
}

// FileRow is one recorded data file.
type FileRow struct {
	Dataset   string
	Subject   string
	Session   string
	Domain    string
	Name      string
	Blocktype string
	Index     int
	HasIndex  bool
	Channels  []string
	Suffix    string
}

// Files returns the files of a scan, filtered and ordered by their position
// in the tree. An empty scanID means the most recent scan.
func (c *Catalog) Files(scanID string, f Filter) ([]FileRow, error) {
	scanID, err := c.resolveScanID(scanID)
	if err != nil {
		return nil, err
	}
	conds, args := f.where([]string{"scan_id = ?"}, []any{scanID})
	rows, err := c.db.Query(
		`SELECT dataset, subject, session, domain, name, blocktype, block_idx, channels, suffix FROM files
		 WHERE `+strings.Join(conds, " AND ")+`
		 ORDER BY dataset, subject, session, domain, name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRow
	for rows.Next() {
		var r FileRow
		var idx sql.NullInt64
		var channels string
		if err := rows.Scan(&r.Dataset, &r.Subject, &r.Session, &r.Domain, &r.Name,
			&r.Blocktype, &idx, &channels, &r.Suffix); err != nil {
			return nil, err
		}
		r.Index, r.HasIndex = int(idx.Int64), idx.Valid
		if channels != "" {
			r.Channels = strings.Split(channels, "-")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *Catalog) resolveScanID(scanID string) (string, error) {
	if scanID != "" {
		return scanID, nil
	}
	return c.LatestScanID()
}
