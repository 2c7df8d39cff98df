package classifier

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

const (
	categoriesTable = "categories"
	tokensTable     = "tokens"

	createCategoriesTable = `CREATE TABLE IF NOT EXISTS ` + categoriesTable + ` (
        id INTEGER PRIMARY KEY ASC,
        name TEXT NOT NULL,
        document_count INTEGER NOT NULL DEFAULT 0,
        UNIQUE(name))`
	createTokensTable = `CREATE TABLE IF NOT EXISTS ` + tokensTable + ` (
        id INTEGER PRIMARY KEY ASC,
        category_id INTEGER NOT NULL,
        token TEXT NOT NULL,
        count INTEGER NOT NULL DEFAULT 0,
        FOREIGN KEY(category_id) REFERENCES categories(id),
        UNIQUE(category_id, token))`

	categoriesQuery               = `SELECT "id", "name", "document_count" FROM ` + categoriesTable
	insertCategoryQuery           = `INSERT OR IGNORE INTO ` + categoriesTable + ` ("name", "document_count") VALUES (?, 0)`
	updateDocCountQuery           = `UPDATE ` + categoriesTable + ` SET document_count = document_count + 1 WHERE "name" = ?`
	categoryIDQuery               = `SELECT "id" FROM ` + categoriesTable + ` WHERE "name" = ?`
	updateOrInsertTokenCountQuery = `INSERT OR REPLACE INTO ` + tokensTable + ` ("category_id", "token", "count") VALUES (?, ?, ? + COALESCE((SELECT "count" FROM ` + tokensTable + ` WHERE "category_id" = ? AND "token" = ?), 0))`
	tokensQuery                   = `SELECT "category_id", "token", "count" FROM ` + tokensTable + ` WHERE token IN (%s)`
	wordTotalsQuery               = `SELECT c."name", COALESCE(SUM(t."count"), 0) FROM ` + categoriesTable + ` c LEFT JOIN ` + tokensTable + ` t ON t."category_id" = c."id" GROUP BY c."id", c."name"`
	vocabularyQuery               = `SELECT COUNT(DISTINCT "token") FROM ` + tokensTable + ` WHERE "count" > 0`
	deleteTokensQuery             = `DELETE FROM ` + tokensTable
	deleteCategoriesQuery         = `DELETE FROM ` + categoriesTable
)

type sqlStore struct {
	db                  *sql.DB
	categoriesQuery     *sql.Stmt
	insertCategoryQuery *sql.Stmt
}

// NewSQLStore returns an SQL database backed Store. The categories and tokens
// tables are created when missing.
func NewSQLStore(db *sql.DB) (Store, error) {
	for _, q := range []string{createCategoriesTable, createTokensTable} {
		if _, err := db.Exec(q); err != nil {
			return nil, errors.Wrap(err, "classifier: create tables")
		}
	}
	s := &sqlStore{
		db: db,
	}
	var err error
	s.categoriesQuery, err = db.Prepare(categoriesQuery)
	if err != nil {
		return nil, err
	}
	s.insertCategoryQuery, err = db.Prepare(insertCategoryQuery)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sqlStore) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, q := range []string{deleteTokensQuery, deleteCategoriesQuery} {
		if _, err := tx.Exec(q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *sqlStore) Categories() (map[string]int64, error) {
	rows, err := s.categoriesQuery.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		var documentCount int64
		if err := rows.Scan(&id, &name, &documentCount); err != nil {
			return nil, err
		}
		categories[name] = documentCount
	}
	return categories, rows.Err()
}

func (s *sqlStore) AddCategory(name string) error {
	_, err := s.insertCategoryQuery.Exec(name)
	return err
}

func (s *sqlStore) AddDocument(category string, tokens []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec(updateDocCountQuery, category)
	if err != nil {
		tx.Rollback()
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		tx.Rollback()
		return err
	} else if n != 1 {
		if err := tx.Rollback(); err != nil {
			return err
		}
		return ErrCategoryDoesNotExist(category)
	}
	var categoryID int64
	if err := tx.QueryRow(categoryIDQuery, category).Scan(&categoryID); err != nil {
		tx.Rollback()
		return err
	}

	// One upsert per distinct token; order follows first occurrence.
	deltas := make(map[string]int64, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := deltas[t]; !ok {
			order = append(order, t)
		}
		deltas[t]++
	}
	for _, t := range order {
		if _, err := tx.Exec(updateOrInsertTokenCountQuery, categoryID, t, deltas[t], categoryID, t); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "classifier: failed to update token %q", t)
		}
	}
	return tx.Commit()
}

func (s *sqlStore) categoryIDs() (map[string]int64, error) {
	rows, err := s.categoriesQuery.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		var documentCount int64
		if err := rows.Scan(&id, &name, &documentCount); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

func (s *sqlStore) TokenCounts(categories, tokens []string) (map[string]map[string]int64, error) {
	categoryMap, err := s.categoryIDs()
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = make([]string, 0, len(categoryMap))
		for name := range categoryMap {
			categories = append(categories, name)
		}
	}
	revCategoryMap := make(map[int64]string, len(categories))
	res := make(map[string]map[string]int64, len(categories))
	for _, c := range categories {
		id, ok := categoryMap[c]
		if !ok {
			return nil, ErrCategoryDoesNotExist(c)
		}
		revCategoryMap[id] = c
		counts := make(map[string]int64, len(tokens))
		for _, t := range tokens {
			counts[t] = 0
		}
		res[c] = counts
	}

	args := make([]interface{}, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		args = append(args, t)
	}
	if len(args) == 0 {
		return res, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	rows, err := s.db.Query(strings.Replace(tokensQuery, "%s", placeholders, 1), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var categoryID int64
		var token string
		var count int64
		if err := rows.Scan(&categoryID, &token, &count); err != nil {
			return nil, err
		}
		if c, ok := revCategoryMap[categoryID]; ok {
			res[c][token] = count
		}
	}
	return res, rows.Err()
}

func (s *sqlStore) WordTotals() (map[string]int64, error) {
	rows, err := s.db.Query(wordTotalsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	totals := make(map[string]int64)
	for rows.Next() {
		var name string
		var total int64
		if err := rows.Scan(&name, &total); err != nil {
			return nil, err
		}
		totals[name] = total
	}
	return totals, rows.Err()
}

func (s *sqlStore) VocabularySize() (int64, error) {
	var n int64
	err := s.db.QueryRow(vocabularyQuery).Scan(&n)
	return n, err
}
