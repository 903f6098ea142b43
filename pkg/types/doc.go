// Package types defines the board item model: items, the lists that contain
// them, the Arena that owns them, the Board document root, and the
// configuration and sentinel errors shared by the rest of pcbcore.
//
// Items never hold pointers to their logical parent. A parent is an ItemID
// resolved through the owning Arena, so destroying an item leaves its former
// children orphaned rather than dangling.
package types
