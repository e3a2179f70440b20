// ABOUTME: ID prefix resolution shared by every SQLite table.
// ABOUTME: Full UUIDs pass through; short prefixes must match exactly one row.
package storage

import (
	"fmt"
	"strings"
)

// resolveID finds the full ID in table from a prefix.
// table is always one of the package's own constants.
func resolveID(q querier, table, idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE id LIKE ? || '%%' LIMIT 2`, table)
	rows, err := q.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s ID: %w", table, err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

// deleteByID removes one row from table by ID or prefix.
func (d *DB) deleteByID(table, idOrPrefix string) error {
	id, err := resolveID(d.db, table, idOrPrefix)
	if err != nil {
		return err
	}

	result, err := d.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}

	return nil
}
