package database

// schemas maps database names to their embedded schema SQL. Folio uses a
// 2-database architecture:
//   - portfolio.db: durable user data (holdings, NAV history)
//   - client_data.db: ephemeral cache for external API responses
var schemas = map[string]string{
	"portfolio": `
		CREATE TABLE IF NOT EXISTS holdings (
			id TEXT PRIMARY KEY,
			ticker TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity REAL NOT NULL,
			purchase_price REAL NOT NULL,
			purchase_date TEXT NOT NULL,
			target_weight REAL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_holdings_ticker ON holdings(ticker);

		CREATE TABLE IF NOT EXISTS nav_history (
			date TEXT PRIMARY KEY,
			value REAL NOT NULL,
			created_at TEXT NOT NULL
		);
	`,
	"client_data": `
		CREATE TABLE IF NOT EXISTS quotes (
			ticker TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS exchange_rates (
			pair TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS price_history (
			ticker TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
	`,
}
