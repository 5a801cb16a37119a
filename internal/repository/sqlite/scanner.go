package sqlite

import (
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanDocument scans a single document from a database row
func ScanDocument(scanner Scanner) (*Document, error) {
	doc := &Document{}
	var updatedAt string

	if err := scanner.Scan(&doc.Key, &doc.Value, &updatedAt); err != nil {
		return nil, err
	}

	parsed, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("document %q has malformed updated_at: %w", doc.Key, err)
	}
	doc.UpdatedAt = parsed

	return doc, nil
}

// ScanKeys scans a single-column result of document keys
func ScanKeys(rows Rows) ([]string, error) {
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
