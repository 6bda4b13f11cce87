package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"toy-marketplace-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteListingRepository implements ListingRepository using SQLite. Listing
// documents are stored as JSON text and queried with json_extract, so the
// schemaless contract matches the MongoDB backend. Identifiers are the same
// hex ObjectIDs the primary backend assigns, keeping the malformed-identifier
// behavior backend-independent.
//
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteListingRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteListingRepository creates a new SQLite listing repository.
// dbPath is the path to the SQLite database file (e.g., "./data/listings.db")
func NewSQLiteListingRepository(dbPath string) (*SQLiteListingRepository, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Keep connection alive

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLite] Initialized with database: %s", dbPath)
	return &SQLiteListingRepository{db: db}, nil
}

// createTables creates the listings table.
func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS listings (
		rowid_order INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		doc TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_listings_id ON listings(id);
	CREATE INDEX IF NOT EXISTS idx_listings_seller ON listings(json_extract(doc, '$.sellerEmail'));
	`
	_, err := db.Exec(query)
	return err
}

// ListAll returns every listing in insertion order.
func (r *SQLiteListingRepository) ListAll(ctx context.Context) ([]model.Listing, error) {
	return r.query(ctx, `SELECT id, doc FROM listings ORDER BY rowid_order`)
}

// ListBySeller returns listings whose sellerEmail matches exactly.
func (r *SQLiteListingRepository) ListBySeller(ctx context.Context, email string) ([]model.Listing, error) {
	return r.query(ctx,
		`SELECT id, doc FROM listings WHERE json_extract(doc, '$.sellerEmail') = ? ORDER BY rowid_order`,
		email)
}

// ListLimited returns the first limit listings in insertion order.
func (r *SQLiteListingRepository) ListLimited(ctx context.Context, limit int64) ([]model.Listing, error) {
	return r.query(ctx, `SELECT id, doc FROM listings ORDER BY rowid_order LIMIT ?`, limit)
}

// ListSortedByPrice returns all listings ordered by price.
func (r *SQLiteListingRepository) ListSortedByPrice(ctx context.Context, ascending bool) ([]model.Listing, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	q := fmt.Sprintf(`SELECT id, doc FROM listings ORDER BY json_extract(doc, '$.price') %s`, direction)
	return r.query(ctx, q)
}

func (r *SQLiteListingRepository) query(ctx context.Context, q string, args ...interface{}) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := []model.Listing{}
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listing, err := decodeStoredListing(id, doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// GetByID returns the listing matching id, or ErrNotFound.
func (r *SQLiteListingRepository) GetByID(ctx context.Context, id string) (model.Listing, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM listings WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return decodeStoredListing(id, doc)
}

// Insert persists doc verbatim and returns the assigned identifier.
func (r *SQLiteListingRepository) Insert(ctx context.Context, doc model.Listing) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode listing: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitive.NewObjectID().Hex()
	_, err = r.db.ExecContext(ctx, `INSERT INTO listings (id, doc) VALUES (?, ?)`, id, string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}
	return id, nil
}

// ReplaceFields overwrites the seven business fields on the matching
// document. A zero matched count is not an error.
func (r *SQLiteListingRepository) ReplaceFields(ctx context.Context, id string, patch model.ListingPatch) (int64, error) {
	if _, err := parseObjectID(id); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE listings SET doc = json_set(doc,
			'$.title', ?,
			'$.category', ?,
			'$.price', ?,
			'$.rating', ?,
			'$.quantity', ?,
			'$.description', ?,
			'$.picture', ?)
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		patch.Title, patch.Category, patch.Price, patch.Rating,
		patch.Quantity, patch.Description, patch.Picture, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update listing: %w", err)
	}
	return result.RowsAffected()
}

// Delete removes the matching document. A zero deleted count is not an error.
func (r *SQLiteListingRepository) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := parseObjectID(id); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete listing: %w", err)
	}
	return result.RowsAffected()
}

// Ping verifies the database connection.
func (r *SQLiteListingRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Stats returns statistics about the listing database.
func (r *SQLiteListingRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["status"] = "connected"

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count); err != nil {
		return nil, err
	}
	stats["total_listings"] = count

	// Database file size (approximate from page count)
	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteListingRepository) Close() error {
	return r.db.Close()
}

// decodeStoredListing rebuilds a listing document from its stored JSON text,
// re-attaching the identifier.
func decodeStoredListing(id, doc string) (model.Listing, error) {
	var listing model.Listing
	if err := json.Unmarshal([]byte(doc), &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing %s: %w", id, err)
	}
	listing[model.FieldID] = id
	return listing, nil
}

// Ensure SQLiteListingRepository implements ListingRepository
var _ ListingRepository = (*SQLiteListingRepository)(nil)
