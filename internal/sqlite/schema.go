package sqlite

// Schema DDL. Coordinates are stored as INTEGER internal units so a
// save/load cycle is lossless.
const (
	createBoards = `CREATE TABLE IF NOT EXISTS boards (
    board_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLayerNames = `CREATE TABLE IF NOT EXISTS layer_names (
    board_id TEXT NOT NULL,
    layer_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (board_id, layer_id),
    FOREIGN KEY (board_id) REFERENCES boards(board_id)
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    board_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    kind TEXT NOT NULL,
    parent_ordinal INTEGER,
    layer INTEGER NOT NULL,
    shape TEXT NOT NULL,
    start_x INTEGER NOT NULL,
    start_y INTEGER NOT NULL,
    end_x INTEGER NOT NULL,
    end_y INTEGER NOT NULL,
    size_w INTEGER NOT NULL,
    size_h INTEGER NOT NULL,
    width INTEGER NOT NULL,
    angle REAL NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (board_id, ordinal),
    FOREIGN KEY (board_id) REFERENCES boards(board_id)
);`
)

// Index DDL.
const (
	idxItemsKind  = `CREATE INDEX IF NOT EXISTS idx_items_kind ON items(board_id, kind);`
	idxItemsLayer = `CREATE INDEX IF NOT EXISTS idx_items_layer ON items(board_id, layer);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createBoards,
	createLayerNames,
	createItems,
	idxItemsKind,
	idxItemsLayer,
}
