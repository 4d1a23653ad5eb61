package sqlite

// schema creates the players table when missing. There are no migrations.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT    NOT NULL,
	title            TEXT    NOT NULL,
	race             TEXT    NOT NULL,
	profession       TEXT    NOT NULL,
	experience       INTEGER NOT NULL,
	level            INTEGER NOT NULL,
	until_next_level INTEGER NOT NULL,
	birthday         INTEGER NOT NULL,
	banned           INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS players_name_idx ON players (name);
CREATE INDEX IF NOT EXISTS players_experience_idx ON players (experience);
CREATE INDEX IF NOT EXISTS players_birthday_idx ON players (birthday);
`

// playerRow mirrors a players table row. Birthday is epoch milliseconds.
type playerRow struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Title          string `db:"title"`
	Race           string `db:"race"`
	Profession     string `db:"profession"`
	Experience     int    `db:"experience"`
	Level          int    `db:"level"`
	UntilNextLevel int    `db:"until_next_level"`
	Birthday       int64  `db:"birthday"`
	Banned         bool   `db:"banned"`
}

const playerColumns = `id, name, title, race, profession, experience, level, until_next_level, birthday, banned`
