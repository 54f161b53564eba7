package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, db *sql.DB, name, email string, hearts int) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
INSERT INTO accounts (name, email, password_hash, role)
VALUES (?, ?, 'x', 'learner')
RETURNING user_id
`, name, email).Scan(&id)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO user_profiles (user_id, hearts) VALUES (?, ?)`, id, hearts)
	require.NoError(t, err)
	return id
}

func seedUnit(t *testing.T, db *sql.DB, title string, order int) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
INSERT INTO units (title, order_index) VALUES (?, ?) RETURNING id
`, title, order).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedLesson(t *testing.T, db *sql.DB, unitID int64, title string, reward, order int) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
INSERT INTO lessons (unit_id, title, rubies_reward, order_index)
VALUES (?, ?, ?, ?)
RETURNING id
`, unitID, title, reward, order).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedSign(t *testing.T, db *sql.DB, lessonID int64, text, difficulty string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
INSERT INTO signs (lesson_id, text, difficulty_level)
VALUES (?, ?, ?)
RETURNING id
`, lessonID, text, difficulty).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedProgress(t *testing.T, db *sql.DB, userID, lessonID int64, progress int, completed bool, lastQuestion int) {
	t.Helper()
	_, err := db.Exec(`
INSERT INTO user_progress (user_id, lesson_id, progress, completed, last_question)
VALUES (?, ?, ?, ?, ?)
`, userID, lessonID, progress, completed, lastQuestion)
	require.NoError(t, err)
}
