// Package cache persists parsed manifest probe records in DuckDB.
// Illumina manifests run to millions of CSV rows and parsing one dominates
// startup time, so the normalized records are written once and read back on
// later runs.
package cache

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/nordgenlab/arraybaf/internal/manifest"
)

// ErrNoManifest is returned by Info when the store holds no manifest row,
// i.e. no build has completed against it.
var ErrNoManifest = errors.New("cache holds no manifest")

// Store manages a DuckDB database holding the probe records of one manifest.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS probes (
			idx INTEGER NOT NULL,
			name VARCHAR NOT NULL,
			snp VARCHAR NOT NULL,
			ref_strand VARCHAR NOT NULL,
			chrom VARCHAR NOT NULL,
			pos BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS manifest_info (
			source VARCHAR NOT NULL,
			size BIGINT NOT NULL,
			mod_time VARCHAR NOT NULL,
			n_probes INTEGER NOT NULL,
			built_at VARCHAR NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecords replaces the stored probe set with records parsed from the
// manifest identified by src. Probes are batch-inserted through the DuckDB
// Appender API. The manifest_info row is written last, so a build that dies
// partway leaves a store that Valid rejects.
func (s *Store) WriteRecords(records []*manifest.Record, src FileFingerprint) error {
	if _, err := s.db.Exec("DELETE FROM probes"); err != nil {
		return fmt.Errorf("clear probes: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM manifest_info"); err != nil {
		return fmt.Errorf("clear manifest info: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "probes")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range records {
		if err := appender.AppendRow(
			int32(r.Index), r.Name, r.SNP, r.RefStrand.String(), r.Chrom, r.Pos,
		); err != nil {
			return fmt.Errorf("append probe %s: %w", r.Name, err)
		}
	}
	if err := appender.Flush(); err != nil {
		return fmt.Errorf("flush probes: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO manifest_info (source, size, mod_time, n_probes, built_at) VALUES (?, ?, ?, ?, ?)",
		src.Path, src.Size, src.ModTime.UTC().Format(time.RFC3339Nano),
		len(records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write manifest info: %w", err)
	}
	return nil
}

// LoadRecords reads all probe records back in manifest order.
func (s *Store) LoadRecords() ([]*manifest.Record, error) {
	rows, err := s.db.Query("SELECT idx, name, snp, ref_strand, chrom, pos FROM probes ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("query probes: %w", err)
	}
	defer rows.Close()

	var records []*manifest.Record
	for rows.Next() {
		var (
			idx                      int
			name, snp, strand, chrom string
			pos                      int64
		)
		if err := rows.Scan(&idx, &name, &snp, &strand, &chrom, &pos); err != nil {
			return nil, fmt.Errorf("scan probe: %w", err)
		}
		records = append(records, &manifest.Record{
			Name:      name,
			SNP:       snp,
			RefStrand: manifest.ParseRefStrand(strand),
			Chrom:     chrom,
			Pos:       pos,
			Index:     idx,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate probes: %w", err)
	}
	return records, nil
}

// Count returns the number of stored probe records.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM probes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count probes: %w", err)
	}
	return n, nil
}

// ManifestInfo describes the manifest a store was built from.
type ManifestInfo struct {
	Source  string
	Size    int64
	ModTime time.Time
	NProbes int
	BuiltAt time.Time
}

// Info returns the stored manifest description, or ErrNoManifest if the
// store was never built.
func (s *Store) Info() (ManifestInfo, error) {
	row := s.db.QueryRow("SELECT source, size, mod_time, n_probes, built_at FROM manifest_info")

	var (
		info             ManifestInfo
		modTime, builtAt string
	)
	err := row.Scan(&info.Source, &info.Size, &modTime, &info.NProbes, &builtAt)
	if err == sql.ErrNoRows {
		return ManifestInfo{}, ErrNoManifest
	}
	if err != nil {
		return ManifestInfo{}, fmt.Errorf("read manifest info: %w", err)
	}

	if info.ModTime, err = time.Parse(time.RFC3339Nano, modTime); err != nil {
		return ManifestInfo{}, fmt.Errorf("parse manifest mod time: %w", err)
	}
	if info.BuiltAt, err = time.Parse(time.RFC3339, builtAt); err != nil {
		return ManifestInfo{}, fmt.Errorf("parse build time: %w", err)
	}
	return info, nil
}

// Valid reports whether the stored probe set was built from the manifest
// file described by fp. Any read failure reads as stale.
func (s *Store) Valid(fp FileFingerprint) bool {
	info, err := s.Info()
	if err != nil {
		return false
	}
	return info.Size == fp.Size && info.ModTime.Equal(fp.ModTime)
}
