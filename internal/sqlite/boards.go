package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

const insertItemSQL = `INSERT INTO items (
    board_id, ordinal, kind, parent_ordinal, layer, shape,
    start_x, start_y, end_x, end_y, size_w, size_h, width, angle, text
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectItemsSQL = `SELECT ordinal, kind, parent_ordinal, layer, shape,
    start_x, start_y, end_x, end_y, size_w, size_h, width, angle, text
FROM items WHERE board_id = ? ORDER BY ordinal`

// SaveBoard writes the board, its custom layer names and every item
// reachable through Board.Walk, replacing any previous copy. A board without
// a DocumentID gets a new UUID v7, which is returned and stored on the board.
func (b *Backend) SaveBoard(board *types.Board) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}
	if board == nil {
		return "", types.ErrNilItem
	}

	id := board.DocumentID
	if id == "" {
		id = generateUUID()
	}
	now := formatTime(time.Now())

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO boards (board_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(board_id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		id, board.Name, now, now); err != nil {
		return "", fmt.Errorf("save board: %w", err)
	}
	for _, stmt := range []string{
		"DELETE FROM layer_names WHERE board_id = ?",
		"DELETE FROM items WHERE board_id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return "", fmt.Errorf("clear board: %w", err)
		}
	}

	for _, l := range board.CustomLayerNames() {
		if _, err := tx.Exec("INSERT INTO layer_names (board_id, layer_id, name) VALUES (?, ?, ?)",
			id, int(l.ID), l.Name); err != nil {
			return "", fmt.Errorf("save layer name: %w", err)
		}
	}

	stmt, err := tx.Prepare(insertItemSQL)
	if err != nil {
		return "", fmt.Errorf("prepare items: %w", err)
	}
	defer stmt.Close()

	ordinals := make(map[types.ItemID]int)
	var saveErr error
	board.Walk(func(it *types.Item) bool {
		ordinal := len(ordinals)
		ordinals[it.ID()] = ordinal

		var parent sql.NullInt64
		// Only containment is persisted. A board-level item whose logical
		// parent is a footprint is stored at board level.
		if p := it.Parent(); p != nil && p.Children() != nil && it.List() == p.Children() {
			po, ok := ordinals[it.ParentID()]
			if !ok {
				saveErr = fmt.Errorf("item %d: parent not saved before child", it.ID())
				return false
			}
			parent = sql.NullInt64{Int64: int64(po), Valid: true}
		}

		_, saveErr = stmt.Exec(id, ordinal, it.Kind().String(), parent, int(it.Layer), it.Shape.String(),
			it.Start.X, it.Start.Y, it.End.X, it.End.Y, it.Size.Width, it.Size.Height,
			it.Width, it.Angle, it.Text)
		return saveErr == nil
	})
	if saveErr != nil {
		return "", fmt.Errorf("save items: %w", saveErr)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	board.DocumentID = id
	b.logger.Debug("board saved", zap.String("board_id", id), zap.Int("items", len(ordinals)))
	return id, nil
}

// LoadBoard reads a board into arena, rebuilding its lists, footprint
// children and parent handles in saved order. Returns ErrNotFound if no
// board has the given id.
func (b *Backend) LoadBoard(arena *types.Arena, id string) (*types.Board, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var name string
	err := b.db.QueryRow("SELECT name FROM boards WHERE board_id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}

	board := arena.NewBoard(name)
	board.DocumentID = id

	if err := b.loadLayerNames(board); err != nil {
		_ = arena.Destroy(board.Item())
		return nil, err
	}
	if err := b.loadItems(board); err != nil {
		_ = arena.Destroy(board.Item())
		return nil, err
	}
	return board, nil
}

func (b *Backend) loadLayerNames(board *types.Board) error {
	rows, err := b.db.Query("SELECT layer_id, name FROM layer_names WHERE board_id = ?", board.DocumentID)
	if err != nil {
		return fmt.Errorf("load layer names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var layer int
		var name string
		if err := rows.Scan(&layer, &name); err != nil {
			return fmt.Errorf("scan layer name: %w", err)
		}
		if err := board.SetLayerName(types.LayerID(layer), name); err != nil {
			return fmt.Errorf("layer %d: %w", layer, err)
		}
	}
	return rows.Err()
}

func (b *Backend) loadItems(board *types.Board) error {
	arena := board.Arena()
	rows, err := b.db.Query(selectItemsSQL, board.DocumentID)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()

	byOrdinal := make(map[int]*types.Item)
	for rows.Next() {
		var (
			ordinal, layer  int
			kindName, shape string
			parent          sql.NullInt64
			it              types.Item
		)
		if err := rows.Scan(&ordinal, &kindName, &parent, &layer, &shape,
			&it.Start.X, &it.Start.Y, &it.End.X, &it.End.Y, &it.Size.Width, &it.Size.Height,
			&it.Width, &it.Angle, &it.Text); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}

		kind, err := types.ParseItemKind(kindName)
		if err != nil {
			return fmt.Errorf("item %d: %w", ordinal, err)
		}
		shapeKind, err := types.ParseShapeKind(shape)
		if err != nil {
			return fmt.Errorf("item %d: %w", ordinal, err)
		}
		item, err := arena.NewItem(kind)
		if err != nil {
			return fmt.Errorf("item %d: %w", ordinal, err)
		}
		item.Layer = types.LayerID(layer)
		item.Shape = shapeKind
		item.Start, item.End, item.Size = it.Start, it.End, it.Size
		item.Width, item.Angle, item.Text = it.Width, it.Angle, it.Text

		if parent.Valid {
			owner, ok := byOrdinal[int(parent.Int64)]
			if !ok {
				return fmt.Errorf("item %d: missing parent %d", ordinal, parent.Int64)
			}
			err = owner.AddChild(item)
		} else {
			err = board.Add(item)
		}
		if err != nil {
			return fmt.Errorf("item %d: %w", ordinal, err)
		}
		byOrdinal[ordinal] = item
	}
	if err := rows.Err(); err != nil {
		return err
	}
	b.logger.Debug("board loaded", zap.String("board_id", board.DocumentID), zap.Int("items", len(byOrdinal)))
	return nil
}

// ListBoards returns a summary of every stored board ordered by creation.
func (b *Backend) ListBoards() ([]types.BoardSummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`SELECT b.board_id, b.name, b.created_at, b.updated_at,
    (SELECT COUNT(*) FROM items i WHERE i.board_id = b.board_id)
FROM boards b ORDER BY b.created_at, b.board_id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	out := []types.BoardSummary{}
	for rows.Next() {
		var s types.BoardSummary
		var created, updated string
		if err := rows.Scan(&s.ID, &s.Name, &created, &updated, &s.Items); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		if s.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("board %s created_at: %w", s.ID, err)
		}
		if s.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("board %s updated_at: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteBoard removes a board and everything stored with it. Returns
// ErrNotFound if no board has the given id.
func (b *Backend) DeleteBoard(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM items WHERE board_id = ?",
		"DELETE FROM layer_names WHERE board_id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("delete board: %w", err)
		}
	}
	res, err := tx.Exec("DELETE FROM boards WHERE board_id = ?", id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return tx.Commit()
}
